package static

import (
	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

type skipLeftNode[T, A, B any, IA impl[T, A], IB impl[T, B]] struct {
	a IA
	b IB
}

func (n skipLeftNode[T, A, B, IA, IB]) run(s parse.State[T]) parse.Result[T, B] {
	ra := n.a.run(s)
	if ra.Err != nil {
		return parse.Retype[B](ra)
	}
	return n.b.run(ra.Next).After(ra.Consumed)
}

// SkipLeft runs a then b and keeps the value of b.
func SkipLeft[T, A, B any, IA impl[T, A], IB impl[T, B]](a Parser[T, A, IA], b Parser[T, B, IB]) Parser[T, B, skipLeftNode[T, A, B, IA, IB]] {
	return wrap[T, B](skipLeftNode[T, A, B, IA, IB]{a.i, b.i})
}

type skipRightNode[T, A, B any, IA impl[T, A], IB impl[T, B]] struct {
	a IA
	b IB
}

func (n skipRightNode[T, A, B, IA, IB]) run(s parse.State[T]) parse.Result[T, A] {
	ra := n.a.run(s)
	if ra.Err != nil {
		return ra
	}
	rb := n.b.run(ra.Next)
	if rb.Err != nil {
		return parse.Retype[A](rb).After(ra.Consumed)
	}
	return parse.Result[T, A]{Value: ra.Value, Consumed: ra.Consumed + rb.Consumed, Next: rb.Next}
}

// SkipRight runs a then b and keeps the value of a.
func SkipRight[T, A, B any, IA impl[T, A], IB impl[T, B]](a Parser[T, A, IA], b Parser[T, B, IB]) Parser[T, A, skipRightNode[T, A, B, IA, IB]] {
	return wrap[T, A](skipRightNode[T, A, B, IA, IB]{a.i, b.i})
}

// Surround runs left, p and right, keeping the value of p.
func Surround[T, L, V, R any, IL impl[T, L], I impl[T, V], IR impl[T, R]](left Parser[T, L, IL], p Parser[T, V, I], right Parser[T, R, IR]) Parser[T, V, skipRightNode[T, V, R, skipLeftNode[T, L, V, IL, I], IR]] {
	return SkipRight(SkipLeft(left, p), right)
}

// Discard drops the value of p.
func Discard[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, struct{}, mapNode[T, V, struct{}, I]] {
	return Const(p, struct{}{})
}

type optNode[T, V any, I impl[T, V]] struct{ p I }

func (n optNode[T, V, I]) run(s parse.State[T]) parse.Result[T, parse.Option[V]] {
	r := n.p.run(s)
	if r.Err != nil {
		if r.IsCommitted() {
			return parse.Retype[parse.Option[V]](r)
		}
		return parse.Success(parse.Option[V]{}, s, 0)
	}
	return parse.Result[T, parse.Option[V]]{Value: parse.Some(r.Value), Consumed: r.Consumed, Next: r.Next}
}

// Opt yields an absent option when p fails without committing.
func Opt[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, parse.Option[V], optNode[T, V, I]] {
	return wrap[T, parse.Option[V]](optNode[T, V, I]{p.i})
}

type peekNode[T, V any, I impl[T, V]] struct{ p I }

func (n peekNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil {
		r.Consumed = 0
		return r
	}
	return parse.Success(r.Value, s, 0)
}

// Peek runs p without consuming input.
func Peek[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, V, peekNode[T, V, I]] {
	return wrap[T, V](peekNode[T, V, I]{p.i})
}

type notNode[T, V any, I impl[T, V]] struct{ p I }

func (n notNode[T, V, I]) run(s parse.State[T]) parse.Result[T, struct{}] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Success(struct{}{}, s, 0)
	}
	return parse.Failure[T, struct{}](s.MismatchError(r.Consumed, "no match"), parse.Uncommitted)
}

// Not succeeds without consuming when p fails.
func Not[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, struct{}, notNode[T, V, I]] {
	return wrap[T, struct{}](notNode[T, V, I]{p.i})
}

type collectNode[T, V any, I impl[T, V]] struct{ p I }

func (n collectNode[T, V, I]) run(s parse.State[T]) parse.Result[T, []T] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Retype[[]T](r)
	}
	matched, _ := s.Slice(r.Consumed)
	return parse.Result[T, []T]{Value: matched, Consumed: r.Consumed, Next: r.Next}
}

// Collect yields the slice of input matched by p.
func Collect[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, []T, collectNode[T, V, I]] {
	return wrap[T, []T](collectNode[T, V, I]{p.i})
}

// Text yields the input matched by p as a string.
func Text[T element.Element, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, string, mapNode[T, []T, string, collectNode[T, V, I]]] {
	return Map(Collect(p), parse.ToString[T])
}

type chainNode[T, V any, I impl[T, V], IO impl[T, func(V, V) V]] struct {
	p  I
	op IO
}

func (n chainNode[T, V, I, IO]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil {
		return r
	}
	acc := r.Value
	consumed := r.Consumed
	cur := r.Next
	for {
		ro := n.op.run(cur)
		if ro.Err != nil {
			if ro.IsCommitted() {
				return parse.Retype[V](ro).After(consumed)
			}
			break
		}
		rp := n.p.run(ro.Next)
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
	return parse.Result[T, V]{Value: acc, Consumed: consumed, Next: cur}
}

// ChainLeft1 parses p (op p)* and folds left to right.
func ChainLeft1[T, V any, I impl[T, V], IO impl[T, func(V, V) V]](p Parser[T, V, I], op Parser[T, func(V, V) V, IO]) Parser[T, V, chainNode[T, V, I, IO]] {
	return wrap[T, V](chainNode[T, V, I, IO]{p.i, op.i})
}
