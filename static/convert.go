package static

import (
	"golang.org/x/exp/constraints"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

type convertNode[T, V, W any, I impl[T, V]] struct {
	p I
	f func(V) (W, error)
}

func (n convertNode[T, V, W, I]) run(s parse.State[T]) parse.Result[T, W] {
	r := n.p.run(s)
	if r.Err != nil {
		return parse.Retype[W](r)
	}
	w, err := n.f(r.Value)
	if err != nil {
		return parse.Result[T, W]{Consumed: r.Consumed, Err: s.ConversionError(r.Consumed, err), Status: parse.Committed}
	}
	return parse.Result[T, W]{Value: w, Consumed: r.Consumed, Next: r.Next}
}

// Convert transforms the value of p with f; errors become committed
// Conversion failures spanning the match.
func Convert[T, V, W any, I impl[T, V]](p Parser[T, V, I], f func(V) (W, error)) Parser[T, W, convertNode[T, V, W, I]] {
	return wrap[T, W](convertNode[T, V, W, I]{p.i, f})
}

type signNode[T element.Element] = optNode[T, T, setNode[T]]

type signedDigits[T any] = parse.Pair[parse.Option[T], []T]

type signedDigitsNode[T element.Element] = andNode[T, parse.Option[T], []T, signNode[T], takeWhileNode[T]]

type fraction[T any] = parse.Pair[T, []T]

type fractionNode[T element.Element] = optNode[T, fraction[T], andNode[T, T, []T, elemNode[T], takeWhileNode[T]]]

type exponent[T any] = parse.Pair[T, signedDigits[T]]

type exponentNode[T element.Element] = optNode[T, exponent[T], andNode[T, T, signedDigits[T], setNode[T], signedDigitsNode[T]]]

type fractionExponent[T any] = parse.Pair[parse.Option[fraction[T]], parse.Option[exponent[T]]]

type numberNode[T element.Element] = andNode[T, signedDigits[T], fractionExponent[T], signedDigitsNode[T],
	andNode[T, parse.Option[fraction[T]], parse.Option[exponent[T]], fractionNode[T], exponentNode[T]]]

type textNode[T element.Element, V any, I impl[T, V]] = mapNode[T, []T, string, collectNode[T, V, I]]

type integerNode[T element.Element, N constraints.Integer] = nameNode[T, N,
	convertNode[T, string, N, textNode[T, signedDigits[T], signedDigitsNode[T]]]]

type floatNode[T element.Element, F constraints.Float] = nameNode[T, F,
	convertNode[T, string, F, textNode[T, parse.Pair[signedDigits[T], fractionExponent[T]], numberNode[T]]]]

func signedDigitsOf[T element.Element]() Parser[T, signedDigits[T], signedDigitsNode[T]] {
	return And(Opt(ElemIn(element.Chars[T]("+-"))), TakeWhile1(element.IsDigit[T]))
}

// Integer parses an optionally signed decimal integer into N.
func Integer[T element.Element, N constraints.Integer]() Parser[T, N, integerNode[T, N]] {
	return Name(Convert(Text(signedDigitsOf[T]()), parse.ParseInteger[N]), "integer")
}

// Float parses a decimal number with optional sign, fraction and exponent
// into F.
func Float[T element.Element, F constraints.Float]() Parser[T, F, floatNode[T, F]] {
	frac := Opt(And(Elem(T('.')), TakeWhile1(element.IsDigit[T])))
	exp := Opt(And(ElemIn(element.Chars[T]("eE")), signedDigitsOf[T]()))
	number := And(signedDigitsOf[T](), And(frac, exp))
	return Name(Convert(Text(number), parse.ParseFloat[F]), "number")
}
