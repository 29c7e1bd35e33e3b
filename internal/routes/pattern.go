package routes

import (
	"strings"

	"github.com/jub0bs/routecors/internal/util"
)

const (
	segSep        = "/"  // path-segment separator
	paramStart    = "{"  // opens a placeholder name
	paramEnd      = "}"  // closes a placeholder name
	paramBrackets = "{}" // neither may occur in a placeholder name
)

// A Pattern represents a compiled route template.
// The zero value corresponds to the empty template,
// which only matches the empty path.
type Pattern struct {
	// Template is the route template from which the pattern was compiled.
	Template string
	tokens   []token
	nParams  int
}

// A token is either a literal or a placeholder.
type token struct {
	lit  string // literal text; empty for placeholders
	name string // placeholder name; non-empty for placeholders only
}

func (tok *token) isParam() bool {
	return tok.name != ""
}

// Compile compiles template into a [Pattern]. Compile never fails:
// every occurrence of a slash followed by a non-empty name enclosed in curly
// braces (e.g. "/{id}") is a placeholder, and everything else is literal text.
// Placeholder names may contain neither "{" nor "}".
func Compile(template string) Pattern {
	p := Pattern{Template: template}
	var start, i int
	for i < len(template) {
		name, ok := placeholderAt(template[i:])
		if !ok {
			i++
			continue
		}
		if start < i {
			p.tokens = append(p.tokens, token{lit: template[start:i]})
		}
		p.tokens = append(p.tokens, token{name: name})
		p.nParams++
		i += len(segSep) + len(paramStart) + len(name) + len(paramEnd)
		start = i
	}
	if start < len(template) {
		p.tokens = append(p.tokens, token{lit: template[start:]})
	}
	return p
}

// placeholderAt reports whether str starts with a placeholder;
// if so, it also returns the placeholder's name.
func placeholderAt(str string) (string, bool) {
	rest, ok := strings.CutPrefix(str, segSep+paramStart)
	if !ok {
		return "", false
	}
	end := strings.IndexAny(rest, paramBrackets)
	if end <= 0 || rest[end:end+1] != paramEnd {
		return "", false
	}
	return rest[:end], true
}

// Names returns the names of p's placeholders, in order of appearance.
func (p *Pattern) Names() []string {
	names := make([]string, 0, p.nParams)
	for _, tok := range p.tokens {
		if tok.isParam() {
			names = append(names, tok.name)
		}
	}
	return names
}

// HasParams reports whether p contains at least one placeholder.
func (p *Pattern) HasParams() bool {
	return p.nParams > 0
}

// Match reports whether p matches the entirety of path.
// A placeholder matches a slash followed by one or more ASCII word bytes
// (letters, digits, and underscores); in particular, it never matches
// slashes, periods, or hyphens.
func (p *Pattern) Match(path string) bool {
	_, ok := matchTokens(p.tokens, path, nil, false)
	return ok
}

// Capture is like [Pattern.Match] but, if p matches path,
// it also returns the values of p's placeholders, in order of appearance.
func (p *Pattern) Capture(path string) ([]string, bool) {
	vals := make([]string, 0, p.nParams)
	return matchTokens(p.tokens, path, vals, true)
}

// wordBytes contains the bytes that placeholders match (after their slash).
var wordBytes = util.MakeASCIISet(
	"0123456789" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"_" +
		"abcdefghijklmnopqrstuvwxyz",
)

func matchTokens(toks []token, str string, vals []string, capture bool) ([]string, bool) {
	for i := range toks {
		tok := &toks[i]
		if !tok.isParam() {
			rest, ok := strings.CutPrefix(str, tok.lit)
			if !ok {
				return vals, false
			}
			str = rest
			continue
		}
		rest, ok := strings.CutPrefix(str, segSep)
		if !ok {
			return vals, false
		}
		n := wordBytes.Span(rest)
		if n == 0 {
			return vals, false
		}
		if i == len(toks)-1 {
			if n != len(rest) {
				return vals, false
			}
			if capture {
				vals = append(vals, rest)
			}
			return vals, true
		}
		// Placeholders are greedy but give back word bytes
		// if the remaining tokens require it.
		for k := n; k > 0; k-- {
			next := vals
			if capture {
				next = append(vals, rest[:k])
			}
			if res, ok := matchTokens(toks[i+1:], rest[k:], next, capture); ok {
				return res, true
			}
		}
		return vals, false
	}
	return vals, str == ""
}
