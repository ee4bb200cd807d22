package parse

import "github.com/dhamidi/comb/element"

// SkipLeft runs a then b and keeps the value of b.
func SkipLeft[T, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, B] {
	return Map(And(a, b), func(p Pair[A, B]) B { return p.Second })
}

// SkipRight runs a then b and keeps the value of a.
func SkipRight[T, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, A] {
	return Map(And(a, b), func(p Pair[A, B]) A { return p.First })
}

// Surround runs left, p and right, keeping the value of p.
func Surround[T, L, V, R any](left Parser[T, L], p Parser[T, V], right Parser[T, R]) Parser[T, V] {
	return SkipRight(SkipLeft(left, p), right)
}

// Discard drops the value of p.
func Discard[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return Const(p, struct{}{})
}

// Option is the value of an optional parser.
type Option[V any] struct {
	Value V
	Ok    bool
}

// Some wraps a present value.
func Some[V any](v V) Option[V] { return Option[V]{Value: v, Ok: true} }

// Or returns the value, or def when absent.
func (o Option[V]) Or(def V) V {
	if o.Ok {
		return o.Value
	}
	return def
}

// Opt runs p and yields an absent Option when p fails without committing.
func Opt[T, V any](p Parser[T, V]) Parser[T, Option[V]] {
	return func(s State[T]) Result[T, Option[V]] {
		r := p(s)
		if r.Err != nil {
			if r.IsCommitted() {
				return Retype[Option[V]](r)
			}
			return Success(Option[V]{}, s, 0)
		}
		return Result[T, Option[V]]{Value: Some(r.Value), Consumed: r.Consumed, Next: r.Next}
	}
}

// Peek runs p without consuming input.
func Peek[T, V any](p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil {
			r.Consumed = 0
			return r
		}
		return Success(r.Value, s, 0)
	}
}

// Not succeeds without consuming when p fails, and fails when p succeeds.
func Not[T, V any](p Parser[T, V]) Parser[T, struct{}] {
	return func(s State[T]) Result[T, struct{}] {
		r := p(s)
		if r.Err != nil {
			return Success(struct{}{}, s, 0)
		}
		return Failure[T, struct{}](s.MismatchError(r.Consumed, "no match"), Uncommitted)
	}
}

// End succeeds only at the end of the input.
func End[T any]() Parser[T, struct{}] {
	return func(s State[T]) Result[T, struct{}] {
		if !s.AtEnd() {
			return Failure[T, struct{}](s.MismatchError(1, "end of input"), Uncommitted)
		}
		return Success(struct{}{}, s, 0)
	}
}

// Collect yields the slice of input matched by p instead of its value.
func Collect[T, V any](p Parser[T, V]) Parser[T, []T] {
	return func(s State[T]) Result[T, []T] {
		r := p(s)
		if r.Err != nil {
			return Retype[[]T](r)
		}
		end := s.offset + r.Consumed
		return Result[T, []T]{Value: s.input[s.offset:end:end], Consumed: r.Consumed, Next: r.Next}
	}
}

// Text yields the input matched by p as a string.
func Text[T element.Element, V any](p Parser[T, V]) Parser[T, string] {
	return Map(Collect(p), ToString[T])
}

// ChainLeft1 parses one or more p separated by op and folds the values left
// to right with the functions op yields. An uncommitted failure of op ends
// the chain; a failure of the operand after an operator fails the chain.
func ChainLeft1[T, V any](p Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil {
			return r
		}
		acc := r.Value
		consumed := r.Consumed
		cur := r.Next
		for {
			ro := op(cur)
			if ro.Err != nil {
				if ro.IsCommitted() {
					return Retype[V](ro).After(consumed)
				}
				break
			}
			rp := p(ro.Next)
			if rp.Err != nil {
				return rp.After(consumed + ro.Consumed)
			}
			acc = ro.Value(acc, rp.Value)
			consumed += ro.Consumed + rp.Consumed
			cur = rp.Next
			if ro.Consumed+rp.Consumed == 0 {
				break
			}
		}
		return Result[T, V]{Value: acc, Consumed: consumed, Next: cur}
	}
}
