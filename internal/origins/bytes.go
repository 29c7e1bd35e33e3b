package origins

// The functions below rely on bitmasks for classifying ASCII bytes;
// see https://go.googlesource.com/go/+/refs/tags/go1.24.2/src/net/textproto/reader.go#678.

// isLowerAlpha reports whether b is in the 0x61-0x7A ASCII range.
func isLowerAlpha(b byte) bool {
	const mask = (1<<26 - 1) << 'a'
	return ((uint64(1)<<b)&(mask&(1<<64-1)) |
		(uint64(1)<<(b-64))&(mask>>64)) != 0
}

// isSubsequentSchemeByte reports whether b a valid byte at index >= 1 in a scheme.
func isSubsequentSchemeByte(b byte) bool {
	// See https://www.rfc-editor.org/rfc/rfc3986.html#section-3.1.
	const mask = 0 |
		1<<'+' |
		1<<'-' |
		1<<'.' |
		(1<<10-1)<<'0' |
		(1<<26-1)<<'a'
	return ((uint64(1)<<b)&(mask&(1<<64-1)) |
		(uint64(1)<<(b-64))&(mask>>64)) != 0
}

// isDomainByte reports whether b is an ASCII lowercase letter, an ASCII digit,
// a hyphen (0x2D), a period (0x2E), or an underscore (0x5F).
func isDomainByte(b byte) bool {
	const mask = 0 |
		1<<'-' |
		1<<labelSep |
		(1<<10-1)<<'0' |
		(1<<26-1)<<'a' |
		1<<'_' // see https://stackoverflow.com/q/2180465
	return ((uint64(1)<<b)&(mask&(1<<64-1)) |
		(uint64(1)<<(b-64))&(mask>>64)) != 0
}

// isDigit reports whether b is in the 0x30-0x39 ASCII range.
func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// isNonZeroDigit reports whether b is in the 0x31-0x39 ASCII range.
func isNonZeroDigit(b byte) bool {
	return '1' <= b && b <= '9'
}

// intFromDigit returns the numerical value of ASCII digit b.
// For instance, if b is '9', the result is 9.
func intFromDigit(b byte) int {
	return int(b) - '0'
}
