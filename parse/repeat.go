package parse

import "fmt"

type nothing = struct{}

// RepeatSep runs p between min and max times, with sep between consecutive
// elements. A negative max means no upper bound. Repetition is greedy:
//
//   - an uncommitted failure of sep, or of p where no separator was
//     consumed, ends the repetition;
//   - a separator that consumed input commits to the element after it, so
//     a failure there fails the whole repetition at the token that did not
//     match;
//   - a committed failure of p or sep fails the whole repetition;
//   - an iteration that succeeds without consuming ends the repetition once
//     min elements are collected, so it cannot loop forever. With a
//     separator the first element may be empty, since every later
//     iteration has to consume a separator.
//
// Fewer than min elements is a failure carrying the error that stopped the
// loop.
func RepeatSep[T, V, S any](p Parser[T, V], sep Parser[T, S], min, max int) Parser[T, []V] {
	if min < 0 || (max >= 0 && min > max) {
		panic(fmt.Sprintf("parse: invalid repetition bounds %d..%d", min, max))
	}
	return func(s State[T]) Result[T, []V] {
		var values []V
		cur := s
		consumed := 0
		var stop *Error
		for max < 0 || len(values) < max {
			sepConsumed := 0
			next := cur
			if sep != nil && len(values) > 0 {
				rs := sep(cur)
				if rs.Err != nil {
					if rs.IsCommitted() {
						return Retype[[]V](rs).After(consumed)
					}
					stop = rs.Err
					break
				}
				sepConsumed = rs.Consumed
				next = rs.Next
			}
			r := p(next)
			if r.Err != nil {
				if r.IsCommitted() || sepConsumed > 0 {
					r.Status = Committed
					return Retype[[]V](r).After(consumed + sepConsumed)
				}
				stop = r.Err
				break
			}
			values = append(values, r.Value)
			consumed += sepConsumed + r.Consumed
			cur = r.Next
			if sepConsumed+r.Consumed == 0 && len(values) >= min && (sep == nil || len(values) > 1) {
				break
			}
		}
		if len(values) < min {
			if stop == nil {
				stop = cur.MismatchError(0, fmt.Sprintf("at least %d elements", min))
			}
			return Result[T, []V]{Consumed: consumed, Err: stop, Status: Uncommitted}
		}
		return Result[T, []V]{Value: values, Consumed: consumed, Next: cur}
	}
}

// Repeat runs p between min and max times. A negative max means no upper
// bound.
func Repeat[T, V any](p Parser[T, V], min, max int) Parser[T, []V] {
	return RepeatSep[T, V, nothing](p, nil, min, max)
}

// Many0 runs p zero or more times.
func Many0[T, V any](p Parser[T, V]) Parser[T, []V] { return Repeat(p, 0, -1) }

// Many1 runs p one or more times.
func Many1[T, V any](p Parser[T, V]) Parser[T, []V] { return Repeat(p, 1, -1) }

func ManyNM[T, V any](p Parser[T, V], n, m int) Parser[T, []V] { return Repeat(p, n, m) }

// Count runs p exactly n times.
func Count[T, V any](p Parser[T, V], n int) Parser[T, []V] { return Repeat(p, n, n) }

func Many0Sep[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return RepeatSep(p, sep, 0, -1)
}

func Many1Sep[T, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return RepeatSep(p, sep, 1, -1)
}

func ManyNMSep[T, V, S any](p Parser[T, V], sep Parser[T, S], n, m int) Parser[T, []V] {
	return RepeatSep(p, sep, n, m)
}

func CountSep[T, V, S any](p Parser[T, V], sep Parser[T, S], n int) Parser[T, []V] {
	return RepeatSep(p, sep, n, n)
}

// Fold0 reduces the values of Many0(p) with f.
func Fold0[T, V, A any](p Parser[T, V], init func() A, f func(A, V) A) Parser[T, A] {
	return Map(Many0(p), func(vs []V) A {
		acc := init()
		for _, v := range vs {
			acc = f(acc, v)
		}
		return acc
	})
}
