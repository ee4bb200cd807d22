package parse

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/dhamidi/comb/element"
)

// Convert transforms the value of p with f. An error from f becomes a
// Conversion error spanning the tokens p matched, and is committed: the
// input had the right shape, so no other alternative should be tried.
func Convert[T, V, W any](p Parser[T, V], f func(V) (W, error)) Parser[T, W] {
	return func(s State[T]) Result[T, W] {
		r := p(s)
		if r.Err != nil {
			return Retype[W](r)
		}
		w, err := f(r.Value)
		if err != nil {
			return Result[T, W]{Consumed: r.Consumed, Err: s.ConversionError(r.Consumed, err), Status: Committed}
		}
		return Result[T, W]{Value: w, Consumed: r.Consumed, Next: r.Next}
	}
}

// ParseInteger parses a base 10 integer into N, rejecting values N cannot
// hold. A leading '+' is accepted for unsigned types too.
func ParseInteger[N constraints.Integer](text string) (N, error) {
	var zero N
	if zero-1 < zero {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return zero, err
		}
		if n := N(v); int64(n) == v {
			return n, nil
		}
	} else {
		v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64)
		if err != nil {
			return zero, err
		}
		if n := N(v); uint64(n) == v {
			return n, nil
		}
	}
	return zero, &strconv.NumError{Func: "ParseInteger", Num: text, Err: strconv.ErrRange}
}

// ParseFloat parses a decimal floating point number into F, rejecting
// values that overflow F.
func ParseFloat[F constraints.Float](text string) (F, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	f := F(v)
	if math.IsInf(float64(f), 0) && !math.IsInf(v, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: text, Err: strconv.ErrRange}
	}
	return f, nil
}

func digits[T element.Element]() Parser[T, []T] {
	return TakeWhile1(element.IsDigit[T])
}

// Integer parses an optionally signed decimal integer into N.
func Integer[T element.Element, N constraints.Integer]() Parser[T, N] {
	sign := Opt(ElemIn(element.Chars[T]("+-")))
	return Convert(Text(And(sign, digits[T]())), ParseInteger[N]).Name("integer")
}

// Float parses a decimal number with optional sign, fraction and exponent
// into F.
func Float[T element.Element, F constraints.Float]() Parser[T, F] {
	sign := Opt(ElemIn(element.Chars[T]("+-")))
	frac := Opt(And(Elem(T('.')), digits[T]()))
	exp := Opt(And(ElemIn(element.Chars[T]("eE")), And(sign, digits[T]())))
	number := And(And(sign, digits[T]()), And(frac, exp))
	return Convert(Text(number), ParseFloat[F]).Name("number")
}
