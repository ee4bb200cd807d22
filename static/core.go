package static

import "github.com/dhamidi/comb/parse"

type pureNode[T, V any] struct{ v V }

func (n pureNode[T, V]) run(s parse.State[T]) parse.Result[T, V] { return parse.Success(n.v, s, 0) }

// Pure succeeds with v without consuming input.
func Pure[T, V any](v V) Parser[T, V, pureNode[T, V]] { return wrap[T, V](pureNode[T, V]{v}) }

type failNode[T, V any] struct{ message string }

func (n failNode[T, V]) run(s parse.State[T]) parse.Result[T, V] {
	return parse.Failure[T, V](s.CustomError(n.message, nil), parse.Uncommitted)
}

// Fail always fails with a custom error.
func Fail[T, V any](message string) Parser[T, V, failNode[T, V]] {
	return wrap[T, V](failNode[T, V]{message})
}

type mapNode[T, A, B any, I impl[T, A]] struct {
	p I
	f func(A) B
}

func (n mapNode[T, A, B, I]) run(s parse.State[T]) parse.Result[T, B] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Retype[B](r)
	}
	return parse.Result[T, B]{Value: n.f(r.Value), Consumed: r.Consumed, Next: r.Next}
}

// Map transforms the value of a successful p.
func Map[T, A, B any, I impl[T, A]](p Parser[T, A, I], f func(A) B) Parser[T, B, mapNode[T, A, B, I]] {
	return wrap[T, B](mapNode[T, A, B, I]{p.i, f})
}

// Const replaces the value of p with v.
func Const[T, A, V any, I impl[T, A]](p Parser[T, A, I], v V) Parser[T, V, mapNode[T, A, V, I]] {
	return Map(p, func(A) V { return v })
}

type flatMapNode[T, A, B any, I impl[T, A]] struct {
	p I
	f func(A) Parser[T, B, Erased[T, B]]
}

func (n flatMapNode[T, A, B, I]) run(s parse.State[T]) parse.Result[T, B] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Retype[B](r)
	}
	return n.f(r.Value).i.run(r.Next).After(r.Consumed)
}

// FlatMap runs p, then the parser f builds from its value.
func FlatMap[T, A, B any, I impl[T, A]](p Parser[T, A, I], f func(A) Parser[T, B, Erased[T, B]]) Parser[T, B, flatMapNode[T, A, B, I]] {
	return wrap[T, B](flatMapNode[T, A, B, I]{p.i, f})
}

type filterNode[T, V any, I impl[T, V]] struct {
	p    I
	pred func(V) bool
}

func (n filterNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil || n.pred(r.Value) {
		return r
	}
	return parse.Failure[T, V](s.MismatchError(r.Consumed, "value accepted by filter"), parse.Uncommitted)
}

// Filter fails with an uncommitted mismatch when pred rejects the value.
func Filter[T, V any, I impl[T, V]](p Parser[T, V, I], pred func(V) bool) Parser[T, V, filterNode[T, V, I]] {
	return wrap[T, V](filterNode[T, V, I]{p.i, pred})
}

type orNode[T, V any, A impl[T, V], B impl[T, V]] struct {
	a A
	b B
}

func (n orNode[T, V, A, B]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.a.run(s)
	if r.Err == nil {
		return r
	}
	if r.IsCommitted() {
		r.Status = parse.Committed
		return r
	}
	rb := n.b.run(s)
	if rb.Err == nil {
		return rb
	}
	if rb.IsCommitted() {
		rb.Status = parse.Committed
		return rb
	}
	return parse.Failure[T, V](parse.Either(r.Err, rb.Err), parse.Uncommitted)
}

// Or tries a, and b from the same state when a fails without committing.
func Or[T, V any, A impl[T, V], B impl[T, V]](a Parser[T, V, A], b Parser[T, V, B]) Parser[T, V, orNode[T, V, A, B]] {
	return wrap[T, V](orNode[T, V, A, B]{a.i, b.i})
}

// Or3 is Or over three alternatives.
func Or3[T, V any, A impl[T, V], B impl[T, V], C impl[T, V]](a Parser[T, V, A], b Parser[T, V, B], c Parser[T, V, C]) Parser[T, V, orNode[T, V, A, orNode[T, V, B, C]]] {
	return Or(a, Or(b, c))
}

// Or4 is Or over four alternatives.
func Or4[T, V any, A impl[T, V], B impl[T, V], C impl[T, V], D impl[T, V]](a Parser[T, V, A], b Parser[T, V, B], c Parser[T, V, C], d Parser[T, V, D]) Parser[T, V, orNode[T, V, A, orNode[T, V, B, orNode[T, V, C, D]]]] {
	return Or(a, Or3(b, c, d))
}

type attemptNode[T, V any, I impl[T, V]] struct{ p I }

func (n attemptNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil {
		r.Status = parse.Uncommitted
		r.Consumed = 0
	}
	return r
}

// Attempt makes any failure of p backtrackable.
func Attempt[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, V, attemptNode[T, V, I]] {
	return wrap[T, V](attemptNode[T, V, I]{p.i})
}

type commitNode[T, V any, I impl[T, V]] struct{ p I }

func (n commitNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil {
		r.Status = parse.Committed
	}
	return r
}

// Commit marks any failure of p as committed.
func Commit[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, V, commitNode[T, V, I]] {
	return wrap[T, V](commitNode[T, V, I]{p.i})
}

type nameNode[T, V any, I impl[T, V]] struct {
	p     I
	label string
}

func (n nameNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	r := n.p.run(s)
	if r.Err != nil {
		r.Err = s.ExpectError(n.label, r.Err)
	}
	return r
}

// Name labels failures of p.
func Name[T, V any, I impl[T, V]](p Parser[T, V, I], label string) Parser[T, V, nameNode[T, V, I]] {
	return wrap[T, V](nameNode[T, V, I]{p.i, label})
}

type andNode[T, A, B any, IA impl[T, A], IB impl[T, B]] struct {
	a IA
	b IB
}

func (n andNode[T, A, B, IA, IB]) run(s parse.State[T]) parse.Result[T, parse.Pair[A, B]] {
	ra := n.a.run(s)
	if ra.Err != nil {
		return parse.Retype[parse.Pair[A, B]](ra)
	}
	rb := n.b.run(ra.Next)
	if rb.Err != nil {
		return parse.Retype[parse.Pair[A, B]](rb).After(ra.Consumed)
	}
	return parse.Result[T, parse.Pair[A, B]]{
		Value:    parse.Pair[A, B]{First: ra.Value, Second: rb.Value},
		Consumed: ra.Consumed + rb.Consumed,
		Next:     rb.Next,
	}
}

// And runs a and then b, pairing their values.
func And[T, A, B any, IA impl[T, A], IB impl[T, B]](a Parser[T, A, IA], b Parser[T, B, IB]) Parser[T, parse.Pair[A, B], andNode[T, A, B, IA, IB]] {
	return wrap[T, parse.Pair[A, B]](andNode[T, A, B, IA, IB]{a.i, b.i})
}
