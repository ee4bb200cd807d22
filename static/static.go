// Package static is the statically composed backend.
//
// It offers the combinators of package parse, but every combinator returns a
// distinct concrete type that records the shape of the grammar, for example
//
//	static.Parser[byte, parse.Pair[byte, byte], andNode[byte, byte, byte, elemNode[byte], elemNode[byte]]]
//
// so composition is resolved at compile time and the compiler can inline
// through it, down to the token matchers at the leaves. Those raise the
// same errors as their package parse counterparts. Combinators are free
// functions only; Parser has no combinator methods.
//
// Go cannot name a type that contains itself, so a recursive grammar goes
// through Erase, which hides the shape behind an interface, and Lazy, which
// defers reading the variable holding it:
//
//	var value static.Parser[byte, Value, static.Erased[byte, Value]]
//	elem := static.Lazy(func() static.Parser[byte, Value, static.Erased[byte, Value]] { return value })
//	...
//	value = static.Erase(...)
//
// Results, states and errors are the types of package parse.
package static

import "github.com/dhamidi/comb/parse"

// impl is satisfied by the node types of this package.
type impl[T, V any] interface {
	run(parse.State[T]) parse.Result[T, V]
}

// Parser wraps the node I that parses T tokens into a V.
type Parser[T, V any, I impl[T, V]] struct {
	i I
}

func wrap[T, V any, I impl[T, V]](i I) Parser[T, V, I] { return Parser[T, V, I]{i: i} }

// Run applies p at s.
func (p Parser[T, V, I]) Run(s parse.State[T]) parse.Result[T, V] { return p.i.run(s) }

// Parse runs p from the start of input in a fresh session.
func (p Parser[T, V, I]) Parse(input []T) parse.Result[T, V] {
	return p.i.run(parse.NewState(input))
}

// Dynamic converts p to a parser of the dynamic backend.
func (p Parser[T, V, I]) Dynamic() parse.Parser[T, V] { return p.i.run }

// Run parses input with p and returns the value or the parse error.
func Run[T, V any, I impl[T, V]](p Parser[T, V, I], input []T) (V, error) {
	return p.Parse(input).Get()
}

// dynamicNode runs a dynamic parser.
type dynamicNode[T, V any] struct{ p parse.Parser[T, V] }

func (n dynamicNode[T, V]) run(s parse.State[T]) parse.Result[T, V] { return n.p(s) }

// FromDynamic embeds a dynamic parser in a static grammar. Each run is an
// indirect call, so grammars use it only to bridge to existing parsers.
func FromDynamic[T, V any](p parse.Parser[T, V]) Parser[T, V, dynamicNode[T, V]] {
	return wrap[T, V](dynamicNode[T, V]{p})
}

// Erased is a node whose shape is hidden behind an interface.
type Erased[T, V any] struct{ i impl[T, V] }

func (n Erased[T, V]) run(s parse.State[T]) parse.Result[T, V] { return n.i.run(s) }

// Erase hides the shape of p, giving every grammar of the same token and
// value type the same Go type.
func Erase[T, V any, I impl[T, V]](p Parser[T, V, I]) Parser[T, V, Erased[T, V]] {
	return wrap[T, V](Erased[T, V]{p.i})
}

type lazyNode[T, V any] struct {
	f func() Parser[T, V, Erased[T, V]]
}

func (n lazyNode[T, V]) run(s parse.State[T]) parse.Result[T, V] { return n.f().i.run(s) }

// Lazy defers reading the parser f returns until it runs. f is called on
// every run.
func Lazy[T, V any](f func() Parser[T, V, Erased[T, V]]) Parser[T, V, lazyNode[T, V]] {
	return wrap[T, V](lazyNode[T, V]{f})
}
