package parse

import "fmt"

// session is shared by every State derived from one top-level parse. It
// holds the memo table used by Cache and the input boxed once, so errors
// can point back into it without allocating per error.
type session struct {
	input any
	memo  map[memoKey]any
}

// State is an immutable cursor over the input. Advancing produces a new
// State; the input itself is never copied or mutated.
type State[T any] struct {
	input  []T
	offset int
	sess   *session
}

// NewState starts a parse over input. Each call opens a fresh session, so
// memoized results never leak between independent parses.
func NewState[T any](input []T) State[T] {
	return State[T]{input: input, sess: &session{input: input}}
}

// Input returns the whole input, independent of the offset.
func (s State[T]) Input() []T { return s.input }

func (s State[T]) Offset() int { return s.offset }

// Remaining returns the input from the offset to the end.
func (s State[T]) Remaining() []T { return s.input[s.offset:] }

// Len is the number of tokens left.
func (s State[T]) Len() int { return len(s.input) - s.offset }

func (s State[T]) AtEnd() bool { return s.offset >= len(s.input) }

// Peek returns the token at the offset.
func (s State[T]) Peek() (T, bool) {
	if s.AtEnd() {
		var zero T
		return zero, false
	}
	return s.input[s.offset], true
}

// Advance moves the cursor n tokens forward. Moving past the end or
// backwards is a bug in the calling combinator and panics.
func (s State[T]) Advance(n int) State[T] {
	if n < 0 || s.offset+n > len(s.input) {
		panic(fmt.Sprintf("parse: advance by %d at offset %d exceeds input of length %d", n, s.offset, len(s.input)))
	}
	s.offset += n
	return s
}

// Slice returns the n tokens at the offset, or false when fewer remain.
func (s State[T]) Slice(n int) ([]T, bool) {
	if n < 0 || s.offset+n > len(s.input) {
		return nil, false
	}
	return s.input[s.offset : s.offset+n], true
}

func (s State[T]) source() any {
	if s.sess == nil {
		return nil
	}
	return s.sess.input
}

// MismatchError reports that the n tokens at the offset did not match what
// the message describes.
func (s State[T]) MismatchError(n int, message string) *Error {
	return &Error{Kind: KindMismatch, Offset: s.offset, Length: n, Message: message, src: s.source()}
}

// IncompleteError reports that the input ended while message was expected.
func (s State[T]) IncompleteError(message string) *Error {
	return &Error{Kind: KindIncomplete, Offset: len(s.input), Message: message, src: s.source()}
}

// ConversionError reports that the n tokens at the offset parsed but could
// not be converted.
func (s State[T]) ConversionError(n int, cause error) *Error {
	return &Error{Kind: KindConversion, Offset: s.offset, Length: n, Message: cause.Error(), Cause: cause, src: s.source()}
}

// CustomError is a caller-defined failure at the offset, optionally wrapping
// a deeper parse error.
func (s State[T]) CustomError(message string, inner *Error) *Error {
	return &Error{Kind: KindCustom, Offset: s.offset, Message: message, Inner: inner, src: s.source()}
}

// ExpectError labels inner with what the caller was trying to parse.
func (s State[T]) ExpectError(label string, inner *Error) *Error {
	return &Error{Kind: KindExpect, Offset: s.offset, Message: label, Inner: inner, src: s.source()}
}
