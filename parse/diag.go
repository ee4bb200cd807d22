package parse

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("comb.parse")

// Offset yields the current offset without consuming input.
func Offset[T any]() Parser[T, int] {
	return func(s State[T]) Result[T, int] {
		return Success(s.offset, s, 0)
	}
}

// Span is a value together with the input range it was parsed from.
type Span[V any] struct {
	Value  V
	Offset int
	Length int
}

func (s Span[V]) End() int { return s.Offset + s.Length }

// Spanned records where the value of p came from.
func Spanned[T, V any](p Parser[T, V]) Parser[T, Span[V]] {
	return func(s State[T]) Result[T, Span[V]] {
		r := p(s)
		if r.Err != nil {
			return Retype[Span[V]](r)
		}
		return Result[T, Span[V]]{
			Value:    Span[V]{Value: r.Value, Offset: s.offset, Length: r.Consumed},
			Consumed: r.Consumed,
			Next:     r.Next,
		}
	}
}

// Log traces p at debug level on the "comb.parse" logger.
func Log[T, V any](p Parser[T, V], name string) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		if !log.AllowLevel(commonlog.Debug) {
			return p(s)
		}
		log.Debugf("%s: enter at offset %d", name, s.offset)
		r := p(s)
		if r.Err != nil {
			log.Debugf("%s: fail at offset %d (%s, consumed %d): %s", name, s.offset, r.Status, r.Consumed, r.Err)
		} else {
			log.Debugf("%s: ok at offset %d, consumed %d", name, s.offset, r.Consumed)
		}
		return r
	}
}
