package static

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/comb/parse"
)

var log = commonlog.GetLogger("comb.static")

type handle struct{ _ byte }

type cacheNode[T, V any, I impl[T, V]] struct {
	p I
	h *handle
}

func (n cacheNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	if r, ok := s.Recall(n.h); ok {
		return r.(parse.Result[T, V])
	}
	r := n.p.run(s)
	s.Remember(n.h, r)
	return r
}

// Cache memoizes p by offset within one parse session.
func Cache[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, V, cacheNode[T, V, I]] {
	return wrap[T, V](cacheNode[T, V, I]{p.i, new(handle)})
}

type spannedNode[T, V any, I impl[T, V]] struct{ p I }

func (n spannedNode[T, V, I]) run(s parse.State[T]) parse.Result[T, parse.Span[V]] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Retype[parse.Span[V]](r)
	}
	return parse.Result[T, parse.Span[V]]{
		Value:    parse.Span[V]{Value: r.Value, Offset: s.Offset(), Length: r.Consumed},
		Consumed: r.Consumed,
		Next:     r.Next,
	}
}

// Spanned records where the value of p came from.
func Spanned[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, parse.Span[V], spannedNode[T, V, I]] {
	return wrap[T, parse.Span[V]](spannedNode[T, V, I]{p.i})
}

type logNode[T, V any, I impl[T, V]] struct {
	p    I
	name string
}

func (n logNode[T, V, I]) run(s parse.State[T]) parse.Result[T, V] {
	if !log.AllowLevel(commonlog.Debug) {
		return n.p.run(s)
	}
	log.Debugf("%s: enter at offset %d", n.name, s.Offset())
	r := n.p.run(s)
	if r.Err != nil {
		log.Debugf("%s: fail at offset %d (%s, consumed %d): %s", n.name, s.Offset(), r.Status, r.Consumed, r.Err)
	} else {
		log.Debugf("%s: ok at offset %d, consumed %d", n.name, s.Offset(), r.Consumed)
	}
	return r
}

// Log traces p at debug level on the "comb.static" logger.
func Log[T, V any, I impl[T, V]](p Parser[T, V, I], name string) Parser[T, V, logNode[T, V, I]] {
	return wrap[T, V](logNode[T, V, I]{p.i, name})
}
