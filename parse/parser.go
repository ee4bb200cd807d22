package parse

// Parser is a function from a cursor to a result. Parsers are plain values:
// combinators wrap them in new closures and never mutate them, so a parser
// can be shared between grammars and goroutines.
type Parser[T, V any] func(State[T]) Result[T, V]

// Run applies p at s.
func (p Parser[T, V]) Run(s State[T]) Result[T, V] { return p(s) }

// Parse runs p from the start of input in a fresh session.
func (p Parser[T, V]) Parse(input []T) Result[T, V] { return p(NewState(input)) }

// Or tries p and then q. See the package function Or.
func (p Parser[T, V]) Or(q Parser[T, V]) Parser[T, V] { return Or(p, q) }

func (p Parser[T, V]) Attempt() Parser[T, V] { return Attempt(p) }

func (p Parser[T, V]) Name(label string) Parser[T, V] { return Name(p, label) }

func (p Parser[T, V]) Cache() Parser[T, V] { return Cache(p) }

func (p Parser[T, V]) Log(name string) Parser[T, V] { return Log(p, name) }

func (p Parser[T, V]) Filter(pred func(V) bool) Parser[T, V] { return Filter(p, pred) }

// Run parses input with p and returns the value or the parse error.
func Run[T, V any](p Parser[T, V], input []T) (V, error) {
	return p.Parse(input).Get()
}

// Pure succeeds with v without consuming input.
func Pure[T, V any](v V) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		return Success(v, s, 0)
	}
}

// Fail always fails with a custom error carrying message.
func Fail[T, V any](message string) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		return Failure[T, V](s.CustomError(message, nil), Uncommitted)
	}
}

// Const replaces the value of p with v.
func Const[T, A, V any](p Parser[T, A], v V) Parser[T, V] {
	return Map(p, func(A) V { return v })
}

// Map transforms the value of a successful p.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(s State[T]) Result[T, B] {
		r := p(s)
		if r.Err != nil {
			return Retype[B](r)
		}
		return Result[T, B]{Value: f(r.Value), Consumed: r.Consumed, Next: r.Next}
	}
}

// FlatMap runs p, then the parser f builds from its value. A failure of the
// second parser keeps its status and counts the tokens p consumed.
func FlatMap[T, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return func(s State[T]) Result[T, B] {
		r := p(s)
		if r.Err != nil {
			return Retype[B](r)
		}
		return f(r.Value)(r.Next).After(r.Consumed)
	}
}

// Filter fails with a mismatch when pred rejects the value of p. The failure
// consumes nothing so an enclosing Or can try another branch.
func Filter[T, V any](p Parser[T, V], pred func(V) bool) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil || pred(r.Value) {
			return r
		}
		return Failure[T, V](s.MismatchError(r.Consumed, "value accepted by filter"), Uncommitted)
	}
}

// Or tries each parser in turn from the same state and returns the first
// success. A failure that is committed, explicitly or by consuming input,
// ends the search and is returned as Committed. When every parser fails
// uncommitted the failures are combined with Either.
func Or[T, V any](ps ...Parser[T, V]) Parser[T, V] {
	if len(ps) == 0 {
		return Fail[T, V]("one of no alternatives")
	}
	return func(s State[T]) Result[T, V] {
		var err *Error
		for _, p := range ps {
			r := p(s)
			if r.Err == nil {
				return r
			}
			if r.IsCommitted() {
				r.Status = Committed
				return r
			}
			if err == nil {
				err = r.Err
			} else {
				err = Either(err, r.Err)
			}
		}
		return Failure[T, V](err, Uncommitted)
	}
}

// Attempt makes any failure of p backtrackable.
func Attempt[T, V any](p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil {
			r.Status = Uncommitted
			r.Consumed = 0
		}
		return r
	}
}

// Commit marks any failure of p as committed, so an enclosing Or does not
// try further alternatives even when p consumed nothing.
func Commit[T, V any](p Parser[T, V]) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil {
			r.Status = Committed
		}
		return r
	}
}

// Name labels failures of p with what was being parsed.
func Name[T, V any](p Parser[T, V], label string) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		r := p(s)
		if r.Err != nil {
			r.Err = s.ExpectError(label, r.Err)
		}
		return r
	}
}

// Pair holds the values of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// And runs a and then b, pairing their values.
func And[T, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, Pair[A, B]] {
	return func(s State[T]) Result[T, Pair[A, B]] {
		ra := a(s)
		if ra.Err != nil {
			return Retype[Pair[A, B]](ra)
		}
		rb := b(ra.Next)
		if rb.Err != nil {
			return Retype[Pair[A, B]](rb).After(ra.Consumed)
		}
		return Result[T, Pair[A, B]]{
			Value:    Pair[A, B]{ra.Value, rb.Value},
			Consumed: ra.Consumed + rb.Consumed,
			Next:     rb.Next,
		}
	}
}

// Seq runs parsers of the same value type in order and collects the values.
func Seq[T, V any](ps ...Parser[T, V]) Parser[T, []V] {
	return func(s State[T]) Result[T, []V] {
		values := make([]V, 0, len(ps))
		cur := s
		consumed := 0
		for _, p := range ps {
			r := p(cur)
			if r.Err != nil {
				return Retype[[]V](r).After(consumed)
			}
			values = append(values, r.Value)
			consumed += r.Consumed
			cur = r.Next
		}
		return Result[T, []V]{Value: values, Consumed: consumed, Next: cur}
	}
}
