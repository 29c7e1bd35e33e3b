package util

// An ASCIISet represents a set of ASCII bytes.
type ASCIISet [8]uint32

// MakeASCIISet creates a set of the ASCII characters in chars.
// All bytes in chars are assumed to be less < utf8.RuneSelf.
// This implementation is adapted from that of the strings package.
func MakeASCIISet(chars string) ASCIISet {
	var as ASCIISet
	for i := range len(chars) {
		c := chars[i]
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// Contains reports whether c is inside the set.
func (as *ASCIISet) Contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}

// Span returns the length of the longest prefix of s
// that consists only of bytes inside the set.
func (as *ASCIISet) Span(s string) int {
	i := 0
	for ; i < len(s) && as.Contains(s[i]); i++ {
		// deliberately empty body
	}
	return i
}
