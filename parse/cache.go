package parse

// handle identifies one Cache call. It is not zero-sized so that every
// allocation gets a distinct address.
type handle struct{ _ byte }

type memoKey struct {
	id     any
	offset int
}

// Recall returns the value remembered under id at the current offset in
// this parse session.
func (s State[T]) Recall(id any) (any, bool) {
	if s.sess == nil {
		return nil, false
	}
	v, ok := s.sess.memo[memoKey{id, s.offset}]
	return v, ok
}

// Remember stores v under id at the current offset. Without a session, as
// for the zero State, nothing is stored.
func (s State[T]) Remember(id any, v any) {
	if s.sess == nil {
		return
	}
	if s.sess.memo == nil {
		s.sess.memo = make(map[memoKey]any)
	}
	s.sess.memo[memoKey{id, s.offset}] = v
}

// Cache memoizes p by input offset within one parse session. Each call to
// Cache creates a new identity, so two caches around equal parsers never
// share entries, and entries never outlive the Parse call that made them.
// A state without a session runs p uncached.
func Cache[T, V any](p Parser[T, V]) Parser[T, V] {
	h := new(handle)
	return func(s State[T]) Result[T, V] {
		if r, ok := s.Recall(h); ok {
			return r.(Result[T, V])
		}
		r := p(s)
		s.Remember(h, r)
		return r
	}
}
