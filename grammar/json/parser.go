package json

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

type options struct {
	cache bool
}

// Option configures the dynamic grammar.
type Option func(*options)

// WithCache memoizes the value parser by offset.
func WithCache() Option {
	return func(o *options) { o.cache = true }
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isUnescaped(c byte) bool { return c >= 0x20 && c != '"' && c != '\\' }

func toNumber(s string) (Value, error) {
	f, err := parse.ParseFloat[float64](s)
	if err != nil {
		return nil, err
	}
	return Number(f), nil
}

func hexRune(s string) (rune, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	return rune(n), err
}

func unescape(c byte) string {
	switch c {
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	}
	return string(rune(c))
}

func isHighSurrogate(r rune) bool { return r >= 0xd800 && r < 0xdc00 }

func isLowSurrogate(r rune) bool { return r >= 0xdc00 && r < 0xe000 }

// joinSurrogates combines a UTF-16 pair. A lone surrogate becomes U+FFFD.
func joinSurrogates(hi rune, lo parse.Option[rune]) string {
	if !isHighSurrogate(hi) {
		if isLowSurrogate(hi) {
			return "\ufffd"
		}
		return string(hi)
	}
	if !lo.Ok {
		return "\ufffd"
	}
	return string(utf16.DecodeRune(hi, lo.Value))
}

func concat(pieces []string) string { return strings.Join(pieces, "") }

func members(ms []Member) Value { return Object(ms) }

func elements(vs []Value) Value { return Array(vs) }

// Parser returns the dynamic JSON grammar. The parser accepts a single
// value surrounded by optional whitespace and requires the whole input to
// be consumed.
func Parser(opts ...Option) parse.Parser[byte, Value] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ws := parse.TakeWhile0(isSpace)
	token := func(c byte) parse.Parser[byte, byte] { return parse.SkipRight(parse.Elem(c), ws) }
	lexeme := func(p parse.Parser[byte, Value]) parse.Parser[byte, Value] { return parse.SkipRight(p, ws) }

	null := parse.Const(parse.String[byte]("null"), Value(Null{}))
	boolean := parse.Or(
		parse.Const(parse.String[byte]("true"), Value(Bool(true))),
		parse.Const(parse.String[byte]("false"), Value(Bool(false))),
	)

	digits := parse.TakeWhile1(element.IsDigit[byte])
	integer := parse.Or(
		parse.Discard(parse.Elem(byte('0'))),
		parse.Discard(parse.And(parse.ElemMatching(element.IsNonZeroDigit[byte]), parse.TakeWhile0(element.IsDigit[byte]))),
	)
	frac := parse.Discard(parse.And(parse.Elem(byte('.')), digits))
	exp := parse.Discard(parse.And(parse.OneOf[byte]("eE"), parse.And(parse.Opt(parse.OneOf[byte]("+-")), digits)))
	number := parse.Convert(
		parse.Text(parse.And(parse.Opt(parse.Elem(byte('-'))), parse.And(integer, parse.And(parse.Opt(frac), parse.Opt(exp))))),
		toNumber,
	).Name("number")

	hex4 := parse.Convert(parse.Text(parse.Count(parse.ElemMatching(element.IsHexDigit[byte]), 4)), hexRune)
	lowSurrogate := parse.Attempt(parse.Filter(parse.SkipLeft(parse.Tag[byte]('\\', 'u'), hex4), isLowSurrogate))
	codepoint := parse.SkipLeft(parse.Elem(byte('u')), parse.FlatMap(hex4, func(hi rune) parse.Parser[byte, string] {
		if !isHighSurrogate(hi) {
			return parse.Pure[byte](joinSurrogates(hi, parse.Option[rune]{}))
		}
		return parse.Map(parse.Opt(lowSurrogate), func(lo parse.Option[rune]) string { return joinSurrogates(hi, lo) })
	}))
	escape := parse.SkipLeft(parse.Elem(byte('\\')), parse.Or(
		parse.Map(parse.OneOf[byte](`"\/bfnrt`), unescape),
		codepoint,
	)).Name("escape sequence")
	piece := parse.Or(parse.Text(parse.TakeWhile1(isUnescaped)), escape)
	str := parse.Surround(parse.Elem(byte('"')), parse.Map(parse.Many0(piece), concat), parse.Elem(byte('"'))).Name("string")
	stringValue := parse.Map(str, func(s string) Value { return String(s) })

	var value parse.Parser[byte, Value]
	ref := parse.Lazy(func() parse.Parser[byte, Value] { return value })

	array := parse.Map(
		parse.Surround(token('['), parse.Many0Sep(ref, token(',')), parse.Elem(byte(']'))),
		elements,
	).Name("array")

	member := parse.Map(
		parse.And(parse.SkipRight(parse.SkipRight(str, ws), token(':')), ref),
		func(p parse.Pair[string, Value]) Member { return Member{Key: p.First, Value: p.Second} },
	)
	object := parse.Map(
		parse.Surround(token('{'), parse.Many0Sep(member, token(',')), parse.Elem(byte('}'))),
		members,
	).Name("object")

	value = lexeme(parse.Or(object, array, stringValue, number, boolean, null))
	if o.cache {
		value = value.Cache()
	}
	return parse.SkipLeft(ws, parse.SkipRight(value, parse.End[byte]())).Name("json value")
}

var parser = Parser()

// Parse parses a JSON document with the dynamic grammar. Options other than
// the defaults build a new parser on each call.
func Parse(data []byte, opts ...Option) (Value, error) {
	if len(opts) == 0 {
		return parse.Run(parser, data)
	}
	return parse.Run(Parser(opts...), data)
}
