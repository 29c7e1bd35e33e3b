package routes

import (
	"iter"
	"net/http"

	"github.com/jub0bs/routecors/internal/headers"
	"github.com/jub0bs/routecors/internal/util"
)

// An Entry groups the handlers registered on a route template.
type Entry struct {
	pattern  Pattern
	handlers map[string]http.Handler // keyed by method
	methods  util.SortedSet          // invariant: keys of handlers
	allow    string                  // methods and OPTIONS, joined
}

// Template returns e's route template.
func (e *Entry) Template() string {
	return e.pattern.Template
}

// Names returns the names of the placeholders in e's route template.
func (e *Entry) Names() []string {
	return e.pattern.Names()
}

// Handler returns the handler registered on e for method, if any.
func (e *Entry) Handler(method string) (http.Handler, bool) {
	h, found := e.handlers[method]
	return h, found
}

// Methods returns the set of methods registered on e.
func (e *Entry) Methods() util.SortedSet {
	return e.methods
}

// Allow returns the methods registered on e, along with OPTIONS,
// sorted in lexicographical order and separated by commas.
func (e *Entry) Allow() string {
	return e.allow
}

// A Table is an ordered route table. Each route template is compiled once,
// when it is first added to the table; compiled patterns are stored in
// registration order and tried in that order.
//
// The zero value is an empty table ready to use.
// A Table must not be mutated while it is being read.
type Table struct {
	entries []*Entry       // in registration order
	index   map[string]int // route template => position in entries
}

// allowOnly is the allow value of templates on which nothing is registered.
const allowOnly = http.MethodOptions

// Add registers h on template for method.
// If a handler is already registered on template for method,
// Add leaves t unchanged and returns false.
// Otherwise, it returns true.
func (t *Table) Add(template, method string, h http.Handler) bool {
	i, found := t.index[template]
	if !found {
		if t.index == nil {
			t.index = make(map[string]int)
		}
		i = len(t.entries)
		t.index[template] = i
		e := Entry{
			pattern:  Compile(template),
			handlers: make(map[string]http.Handler),
			allow:    allowOnly,
		}
		t.entries = append(t.entries, &e)
	}
	e := t.entries[i]
	if _, found := e.handlers[method]; found {
		return false
	}
	e.handlers[method] = h
	e.methods.Add(method)
	e.allow = e.methods.With(http.MethodOptions).Join(headers.ValueSep)
	return true
}

// Len returns the number of route templates in t.
func (t *Table) Len() int {
	return len(t.entries)
}

// Templates returns an iterator over t's route templates,
// in registration order.
func (t *Table) Templates() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range t.entries {
			if !yield(e.pattern.Template) {
				return
			}
		}
	}
}

// Entry returns the entry registered under template, if any.
func (t *Table) Entry(template string) (*Entry, bool) {
	i, found := t.index[template]
	if !found {
		return nil, false
	}
	return t.entries[i], true
}

// Match returns the route template that matches path.
// A template identical to path takes precedence;
// failing that, the first template (in registration order)
// whose pattern matches path wins.
// If no template matches path, Match returns path itself.
func (t *Table) Match(path string) string {
	if _, found := t.index[path]; found {
		return path
	}
	for _, e := range t.entries {
		if e.pattern.HasParams() && e.pattern.Match(path) {
			return e.pattern.Template
		}
	}
	return path
}

// Lookup is like [Table.Match], but it returns the matching entry (if any)
// along with the values of its template's placeholders.
// Lookup returns no values when path is identical to the entry's template.
func (t *Table) Lookup(path string) (*Entry, []string, bool) {
	if i, found := t.index[path]; found {
		return t.entries[i], nil, true
	}
	for _, e := range t.entries {
		if !e.pattern.HasParams() {
			continue
		}
		if vals, ok := e.pattern.Capture(path); ok {
			return e, vals, true
		}
	}
	return nil, nil, false
}

// Allow returns the methods registered under template, along with OPTIONS,
// sorted in lexicographical order and separated by commas.
// If template is absent from t, Allow simply returns "OPTIONS".
func (t *Table) Allow(template string) string {
	e, found := t.Entry(template)
	if !found {
		return allowOnly
	}
	return e.allow
}
