package util

import "strings"

// ByteUppercase returns a [byte-uppercase] version of str.
//
// [byte-uppercase]: https://infra.spec.whatwg.org/#byte-uppercase
func ByteUppercase(str string) string {
	return strings.Map(byteUppercaseOne, str)
}

func byteUppercaseOne(asciiRune rune) rune {
	const toUpper = 'a' - 'A'
	if 'a' <= asciiRune && asciiRune <= 'z' {
		return asciiRune - toUpper
	}
	return asciiRune
}
