package static

import (
	"fmt"

	"github.com/dhamidi/comb/parse"
)

type noSep[T any] struct{}

func (noSep[T]) run(s parse.State[T]) parse.Result[T, struct{}] {
	return parse.Success(struct{}{}, s, 0)
}

type repeatNode[T, V, S any, I impl[T, V], IS impl[T, S]] struct {
	p        I
	sep      IS
	hasSep   bool
	min, max int
}

func (n repeatNode[T, V, S, I, IS]) run(s parse.State[T]) parse.Result[T, []V] {
	var values []V
	cur := s
	consumed := 0
	var stop *parse.Error
	for n.max < 0 || len(values) < n.max {
		sepConsumed := 0
		next := cur
		if n.hasSep && len(values) > 0 {
			rs := n.sep.run(cur)
			if rs.Err != nil {
				if rs.IsCommitted() {
					return parse.Retype[[]V](rs).After(consumed)
				}
				stop = rs.Err
				break
			}
			sepConsumed = rs.Consumed
			next = rs.Next
		}
		r := n.p.run(next)
		if r.Err != nil {
			if r.IsCommitted() || sepConsumed > 0 {
				r.Status = parse.Committed
				return parse.Retype[[]V](r).After(consumed + sepConsumed)
			}
			stop = r.Err
			break
		}
		values = append(values, r.Value)
		consumed += sepConsumed + r.Consumed
		cur = r.Next
		if sepConsumed+r.Consumed == 0 && len(values) >= n.min && (!n.hasSep || len(values) > 1) {
			break
		}
	}
	if len(values) < n.min {
		if stop == nil {
			stop = cur.MismatchError(0, fmt.Sprintf("at least %d elements", n.min))
		}
		return parse.Result[T, []V]{Consumed: consumed, Err: stop, Status: parse.Uncommitted}
	}
	return parse.Result[T, []V]{Value: values, Consumed: consumed, Next: cur}
}

func checkBounds(min, max int) {
	if min < 0 || (max >= 0 && min > max) {
		panic(fmt.Sprintf("static: invalid repetition bounds %d..%d", min, max))
	}
}

// RepeatSep runs p between min and max times with sep between elements,
// with the semantics of parse.RepeatSep.
func RepeatSep[T, V, S any, I impl[T, V], IS impl[T, S]](p Parser[T, V, I], sep Parser[T, S, IS], min, max int) Parser[T, []V, repeatNode[T, V, S, I, IS]] {
	checkBounds(min, max)
	return wrap[T, []V](repeatNode[T, V, S, I, IS]{p: p.i, sep: sep.i, hasSep: true, min: min, max: max})
}

// Repeat runs p between min and max times. A negative max means no upper
// bound.
func Repeat[T, V any, I impl[T, V]](p Parser[T, V, I], min, max int) Parser[T, []V, repeatNode[T, V, struct{}, I, noSep[T]]] {
	checkBounds(min, max)
	return wrap[T, []V](repeatNode[T, V, struct{}, I, noSep[T]]{p: p.i, min: min, max: max})
}

func Many0[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, []V, repeatNode[T, V, struct{}, I, noSep[T]]] {
	return Repeat(p, 0, -1)
}

func Many1[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, []V, repeatNode[T, V, struct{}, I, noSep[T]]] {
	return Repeat(p, 1, -1)
}

func ManyNM[T, V any, I impl[T, V]](p Parser[T, V, I], n, m int) Parser[T, []V, repeatNode[T, V, struct{}, I, noSep[T]]] {
	return Repeat(p, n, m)
}

func Count[T, V any, I impl[T, V]](p Parser[T, V, I], n int) Parser[T, []V, repeatNode[T, V, struct{}, I, noSep[T]]] {
	return Repeat(p, n, n)
}

func Many0Sep[T, V, S any, I impl[T, V], IS impl[T, S]](p Parser[T, V, I], sep Parser[T, S, IS]) Parser[T, []V, repeatNode[T, V, S, I, IS]] {
	return RepeatSep(p, sep, 0, -1)
}

func Many1Sep[T, V, S any, I impl[T, V], IS impl[T, S]](p Parser[T, V, I], sep Parser[T, S, IS]) Parser[T, []V, repeatNode[T, V, S, I, IS]] {
	return RepeatSep(p, sep, 1, -1)
}

func ManyNMSep[T, V, S any, I impl[T, V], IS impl[T, S]](p Parser[T, V, I], sep Parser[T, S, IS], n, m int) Parser[T, []V, repeatNode[T, V, S, I, IS]] {
	return RepeatSep(p, sep, n, m)
}

func CountSep[T, V, S any, I impl[T, V], IS impl[T, S]](p Parser[T, V, I], sep Parser[T, S, IS], n int) Parser[T, []V, repeatNode[T, V, S, I, IS]] {
	return RepeatSep(p, sep, n, n)
}
