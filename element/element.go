// Package element classifies single input tokens.
//
// The predicates are generic over Element so the same grammar helpers work
// for byte input and for rune input. Classification is ASCII-only for both:
// a rune outside the ASCII range is never a digit, letter or space here.
package element

// Element is the token constraint shared by the character-level matchers.
type Element interface {
	~byte | ~rune
}

// IsByte reports whether T is a byte type rather than a rune type.
func IsByte[T Element]() bool {
	var zero T
	return ^zero > 0
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit[T Element](c T) bool {
	return c >= '0' && c <= '9'
}

// IsNonZeroDigit reports whether c is in '1'..'9'.
func IsNonZeroDigit[T Element](c T) bool {
	return c >= '1' && c <= '9'
}

// IsHexDigit reports whether c is a hexadecimal digit of either case.
func IsHexDigit[T Element](c T) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsOctDigit reports whether c is in '0'..'7'.
func IsOctDigit[T Element](c T) bool {
	return c >= '0' && c <= '7'
}

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha[T Element](c T) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func IsAlphanumeric[T Element](c T) bool {
	return IsAlpha(c) || IsDigit(c)
}

// IsPunct reports whether c is printable ASCII that is neither a letter, a
// digit nor a space.
func IsPunct[T Element](c T) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// IsControl reports whether c is an ASCII control character.
func IsControl[T Element](c T) bool {
	return (c >= 0 && c < 0x20) || c == 0x7f
}

// IsSpace reports whether c is a space or a horizontal tab.
func IsSpace[T Element](c T) bool {
	return c == ' ' || c == '\t'
}

// IsNewline reports whether c is a line feed or a carriage return.
func IsNewline[T Element](c T) bool {
	return c == '\n' || c == '\r'
}

// IsMultispace reports whether c is a space, a tab or a newline character.
func IsMultispace[T Element](c T) bool {
	return IsSpace(c) || IsNewline(c)
}

// IsWhitespace is IsMultispace extended with form feed and vertical tab.
func IsWhitespace[T Element](c T) bool {
	return IsMultispace(c) || c == '\f' || c == '\v'
}

// IsPrintable reports whether c is printable ASCII, space included.
func IsPrintable[T Element](c T) bool {
	return c >= ' ' && c <= '~'
}
