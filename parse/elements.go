package parse

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/comb/element"
)

// Quote renders a token for error messages. Characters are quoted, other
// tokens printed with fmt.
func Quote[T any](e T) string {
	switch v := any(e).(type) {
	case byte:
		return strconv.QuoteRune(rune(v))
	case rune:
		return strconv.QuoteRune(v)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(e)
}

// QuoteAll renders a token sequence for error messages.
func QuoteAll[T any](es []T) string {
	switch v := any(es).(type) {
	case []byte:
		return strconv.Quote(string(v))
	case []rune:
		return strconv.Quote(string(v))
	}
	return fmt.Sprint(es)
}

func elemMatching[T any](pred func(T) bool, message string) Parser[T, T] {
	return func(s State[T]) Result[T, T] {
		c, ok := s.Peek()
		if !ok {
			return Failure[T, T](s.IncompleteError(message), Uncommitted)
		}
		if !pred(c) {
			return Failure[T, T](s.MismatchError(1, message), Uncommitted)
		}
		return Success(c, s, 1)
	}
}

// ElemMatching consumes one token accepted by pred.
func ElemMatching[T any](pred func(T) bool) Parser[T, T] {
	return elemMatching(pred, "matching element")
}

// Elem consumes the token e.
func Elem[T comparable](e T) Parser[T, T] {
	return elemMatching(func(c T) bool { return c == e }, Quote(e))
}

// ElemIn consumes one token contained in set.
func ElemIn[T element.Element](set element.Set[T]) Parser[T, T] {
	return elemMatching(set.Contains, "element in set")
}

// ElemNotIn consumes one token not contained in set.
func ElemNotIn[T element.Element](set element.Set[T]) Parser[T, T] {
	return elemMatching(func(c T) bool { return !set.Contains(c) }, "element not in set")
}

// OneOf consumes one of the characters of chars.
func OneOf[T element.Element](chars string) Parser[T, T] {
	return elemMatching(element.Chars[T](chars).Contains, "one of "+strconv.Quote(chars))
}

// NoneOf consumes one token that is none of the characters of chars.
func NoneOf[T element.Element](chars string) Parser[T, T] {
	set := element.Chars[T](chars)
	return elemMatching(func(c T) bool { return !set.Contains(c) }, "none of "+strconv.Quote(chars))
}

// AnyElem consumes any single token.
func AnyElem[T any]() Parser[T, T] {
	return elemMatching(func(T) bool { return true }, "any element")
}

// Take consumes exactly n tokens.
func Take[T any](n int) Parser[T, []T] {
	return func(s State[T]) Result[T, []T] {
		ts, ok := s.Slice(n)
		if !ok {
			return Failure[T, []T](s.IncompleteError(fmt.Sprintf("%d elements", n)), Uncommitted)
		}
		return Success(ts, s, n)
	}
}

func takeWhile[T any](pred func(T) bool, min int) Parser[T, []T] {
	return func(s State[T]) Result[T, []T] {
		rest := s.Remaining()
		n := 0
		for n < len(rest) && pred(rest[n]) {
			n++
		}
		if n < min {
			if n == len(rest) {
				return Failure[T, []T](s.IncompleteError("matching element"), Uncommitted)
			}
			return Failure[T, []T](s.Advance(n).MismatchError(1, "matching element"), Uncommitted)
		}
		return Success(rest[:n:n], s, n)
	}
}

// TakeWhile0 consumes the longest run of tokens accepted by pred, which may
// be empty.
func TakeWhile0[T any](pred func(T) bool) Parser[T, []T] { return takeWhile(pred, 0) }

// TakeWhile1 is TakeWhile0 requiring at least one token.
func TakeWhile1[T any](pred func(T) bool) Parser[T, []T] { return takeWhile(pred, 1) }

// Tag consumes the literal token sequence lit. Tag is atomic: a mismatch
// consumes nothing and spans the tokens compared up to the first difference.
// Input that ends on a matching prefix is Incomplete.
func Tag[T comparable](lit ...T) Parser[T, []T] {
	message := QuoteAll(lit)
	return func(s State[T]) Result[T, []T] {
		rest := s.Remaining()
		for i, c := range lit {
			if i >= len(rest) {
				return Failure[T, []T](s.IncompleteError(message), Uncommitted)
			}
			if rest[i] != c {
				return Failure[T, []T](s.MismatchError(i+1, message), Uncommitted)
			}
		}
		return Success(rest[:len(lit):len(lit)], s, len(lit))
	}
}

// Tokens converts str to the token type: bytes of its UTF-8 encoding, or
// its runes.
func Tokens[T element.Element](str string) []T {
	if element.IsByte[T]() {
		out := make([]T, len(str))
		for i := 0; i < len(str); i++ {
			out[i] = T(str[i])
		}
		return out
	}
	out := make([]T, 0, utf8.RuneCountInString(str))
	for _, r := range str {
		out = append(out, T(r))
	}
	return out
}

// ToString is the inverse of Tokens.
func ToString[T element.Element](ts []T) string {
	if element.IsByte[T]() {
		b := make([]byte, len(ts))
		for i, c := range ts {
			b[i] = byte(c)
		}
		return string(b)
	}
	r := make([]rune, len(ts))
	for i, c := range ts {
		r[i] = rune(c)
	}
	return string(r)
}

// String consumes str and yields it.
func String[T element.Element](str string) Parser[T, string] {
	return Const(Tag(Tokens[T](str)...), str)
}

// tokenReader feeds tokens to the regexp engine. The size reported for each
// rune is the number of tokens it occupies, so match indices come back as
// token counts.
type tokenReader[T element.Element] struct {
	ts    []T
	pos   int
	bytes bool
}

func (r *tokenReader[T]) ReadRune() (rune, int, error) {
	if r.pos >= len(r.ts) {
		return 0, 0, io.EOF
	}
	if !r.bytes {
		c := rune(r.ts[r.pos])
		r.pos++
		return c, 1, nil
	}
	var buf [utf8.UTFMax]byte
	n := 0
	for n < len(buf) && r.pos+n < len(r.ts) {
		buf[n] = byte(r.ts[r.pos+n])
		n++
	}
	c, size := utf8.DecodeRune(buf[:n])
	r.pos += size
	return c, size, nil
}

// CompileRegex compiles expr anchored so it only matches at the start of
// the tokens it is given.
func CompileRegex(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)`)
}

// MatchRegex returns the number of tokens at the start of ts matched by re,
// which must come from CompileRegex.
func MatchRegex[T element.Element](re *regexp.Regexp, ts []T) (int, bool) {
	loc := re.FindReaderIndex(&tokenReader[T]{ts: ts, bytes: element.IsByte[T]()})
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}

// Regex matches expr anchored at the cursor and yields the matched text.
// Byte input is decoded as UTF-8 and rune input read by code point. Regex
// panics if expr does not compile.
func Regex[T element.Element](expr string) Parser[T, string] {
	re := CompileRegex(expr)
	message := "match of /" + expr + "/"
	return func(s State[T]) Result[T, string] {
		rest := s.Remaining()
		n, ok := MatchRegex(re, rest)
		if !ok {
			if s.AtEnd() {
				return Failure[T, string](s.IncompleteError(message), Uncommitted)
			}
			return Failure[T, string](s.MismatchError(1, message), Uncommitted)
		}
		return Success(ToString(rest[:n]), s, n)
	}
}
