package util

import (
	"iter"
	"slices"
	"strings"
)

// A SortedSet represents a set of strings sorted in lexicographical order.
// The zero value represents an empty set.
type SortedSet struct {
	elems []string // invariant: sorted, no dupes
}

// NewSortedSet returns a SortedSet that contains all of elems
// but no other elements.
func NewSortedSet(elems ...string) (set SortedSet) {
	for _, e := range elems {
		set.Add(e)
	}
	return
}

// Add adds e to set.
func (set *SortedSet) Add(e string) {
	i, found := slices.BinarySearch(set.elems, e)
	if found {
		return
	}
	set.elems = slices.Insert(set.elems, i, e)
}

// Contains reports whether e is an element of set.
func (set SortedSet) Contains(e string) bool {
	_, found := slices.BinarySearch(set.elems, e)
	return found
}

// Size returns the cardinality of set.
func (set SortedSet) Size() int {
	return len(set.elems)
}

// All returns an iterator over set's elements in lexicographical order.
func (set SortedSet) All() iter.Seq[string] {
	return slices.Values(set.elems)
}

// Join concatenates set's elements in lexicographical order,
// placing sep between consecutive elements.
func (set SortedSet) Join(sep string) string {
	return strings.Join(set.elems, sep)
}

// With returns a copy of set to which e has been added;
// set itself is left unchanged.
func (set SortedSet) With(e string) SortedSet {
	i, found := slices.BinarySearch(set.elems, e)
	if found {
		return SortedSet{elems: slices.Clone(set.elems)}
	}
	elems := make([]string, 0, len(set.elems)+1)
	elems = append(elems, set.elems[:i]...)
	elems = append(elems, e)
	elems = append(elems, set.elems[i:]...)
	return SortedSet{elems: elems}
}

// ToSlice returns a slice of set's elements sorted in lexicographical order.
func (set SortedSet) ToSlice() []string {
	// Clients can mutate the result; see (*routecors.Routes).Methods.
	return slices.Clone(set.elems)
}
