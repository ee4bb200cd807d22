package parse

// Lazy defers building a parser until it runs. It is how recursive grammars
// refer to themselves:
//
//	var value parse.Parser[byte, Value]
//	array := parse.Surround(lbrack, parse.Many0Sep(parse.Lazy(func() parse.Parser[byte, Value] { return value }), comma), rbrack)
//	value = parse.Or(scalar, array)
//
// f is called on every run, so it should return an already built parser
// rather than construct a new one.
func Lazy[T, V any](f func() Parser[T, V]) Parser[T, V] {
	return func(s State[T]) Result[T, V] {
		return f()(s)
	}
}
