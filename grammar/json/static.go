package json

import (
	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
	"github.com/dhamidi/comb/static"
)

type staticValue = static.Parser[byte, Value, static.Erased[byte, Value]]

// StaticParser returns the JSON grammar built with the static backend. It
// accepts exactly the documents Parser accepts and fails with the same
// errors.
func StaticParser() staticValue {
	ws := static.TakeWhile0(isSpace)

	null := static.Const(static.String[byte]("null"), Value(Null{}))
	boolean := static.Or(
		static.Const(static.String[byte]("true"), Value(Bool(true))),
		static.Const(static.String[byte]("false"), Value(Bool(false))),
	)

	digits := static.TakeWhile1(element.IsDigit[byte])
	integer := static.Or(
		static.Discard(static.Elem(byte('0'))),
		static.Discard(static.And(static.ElemMatching(element.IsNonZeroDigit[byte]), static.TakeWhile0(element.IsDigit[byte]))),
	)
	frac := static.Discard(static.And(static.Elem(byte('.')), digits))
	exp := static.Discard(static.And(static.OneOf[byte]("eE"), static.And(static.Opt(static.OneOf[byte]("+-")), digits)))
	number := static.Name(static.Convert(
		static.Text(static.And(static.Opt(static.Elem(byte('-'))), static.And(integer, static.And(static.Opt(frac), static.Opt(exp))))),
		toNumber,
	), "number")

	hex4 := static.Convert(static.Text(static.Count(static.ElemMatching(element.IsHexDigit[byte]), 4)), hexRune)
	lowSurrogate := static.Attempt(static.Filter(static.SkipLeft(static.Tag[byte]('\\', 'u'), hex4), isLowSurrogate))
	codepoint := static.SkipLeft(static.Elem(byte('u')), static.FlatMap(hex4, func(hi rune) static.Parser[byte, string, static.Erased[byte, string]] {
		if !isHighSurrogate(hi) {
			return static.Erase(static.Pure[byte](joinSurrogates(hi, parse.Option[rune]{})))
		}
		return static.Erase(static.Map(static.Opt(lowSurrogate), func(lo parse.Option[rune]) string { return joinSurrogates(hi, lo) }))
	}))
	escape := static.Name(static.SkipLeft(static.Elem(byte('\\')), static.Or(
		static.Map(static.OneOf[byte](`"\/bfnrt`), unescape),
		codepoint,
	)), "escape sequence")
	piece := static.Or(static.Text(static.TakeWhile1(isUnescaped)), escape)
	str := static.Name(static.Surround(static.Elem(byte('"')), static.Map(static.Many0(piece), concat), static.Elem(byte('"'))), "string")
	stringValue := static.Map(str, func(s string) Value { return String(s) })

	var value staticValue
	ref := static.Lazy(func() staticValue { return value })

	array := static.Name(static.Map(
		static.Surround(static.SkipRight(static.Elem(byte('[')), ws), static.Many0Sep(ref, static.SkipRight(static.Elem(byte(',')), ws)), static.Elem(byte(']'))),
		elements,
	), "array")

	member := static.Map(
		static.And(static.SkipRight(static.SkipRight(str, ws), static.SkipRight(static.Elem(byte(':')), ws)), ref),
		func(p parse.Pair[string, Value]) Member { return Member{Key: p.First, Value: p.Second} },
	)
	object := static.Name(static.Map(
		static.Surround(static.SkipRight(static.Elem(byte('{')), ws), static.Many0Sep(member, static.SkipRight(static.Elem(byte(',')), ws)), static.Elem(byte('}'))),
		members,
	), "object")

	scalar := static.Or3(stringValue, number, static.Or(boolean, null))
	value = static.Erase(static.SkipRight(static.Or3(object, array, scalar), ws))
	return static.Erase(static.Name(static.SkipLeft(ws, static.SkipRight(value, static.End[byte]())), "json value"))
}

var staticParser = StaticParser()

// ParseStatic parses a JSON document with the static grammar.
func ParseStatic(data []byte) (Value, error) {
	return static.Run(staticParser, data)
}
