package hocon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

// forbidden may not appear in unquoted strings.
const forbidden = "$\"{}[]:=,+#`^?!@*&\\"

func isSpace(c rune) bool { return unicode.IsSpace(c) || c == '\ufeff' }

func isInlineSpace(c rune) bool { return c != '\n' && isSpace(c) }

func unescape(c rune) string {
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
	return string(c)
}

func hexRune(s string) (rune, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	return rune(n), err
}

func utf16Pair(hi rune, lo parse.Option[rune]) string {
	if lo.Ok {
		return string(utf16.DecodeRune(hi, lo.Value))
	}
	return string(hi)
}

func quoted() parse.Parser[rune, string] {
	hex4 := parse.Convert(parse.Text(parse.Count(parse.ElemMatching(element.IsHexDigit[rune]), 4)), hexRune)
	low := parse.Attempt(parse.Filter(parse.SkipLeft(parse.Tag('\\', 'u'), hex4), func(r rune) bool {
		return r >= 0xdc00 && r < 0xe000
	}))
	codepoint := parse.SkipLeft(parse.Elem('u'), parse.FlatMap(hex4, func(hi rune) parse.Parser[rune, string] {
		if hi < 0xd800 || hi >= 0xdc00 {
			return parse.Pure[rune](string(hi))
		}
		return parse.Map(parse.Opt(low), func(lo parse.Option[rune]) string { return utf16Pair(hi, lo) })
	}))
	escape := parse.SkipLeft(parse.Elem('\\'), parse.Or(
		parse.Map(parse.OneOf[rune](`"\/bfnrt`), unescape),
		codepoint,
	)).Name("escape sequence")
	plain := parse.Text(parse.TakeWhile1(func(c rune) bool { return c != '"' && c != '\\' && c != '\n' }))
	body := parse.Map(parse.Many0(parse.Or(plain, escape)), func(ps []string) string { return strings.Join(ps, "") })
	return parse.Surround(parse.Elem('"'), body, parse.Elem('"')).Name("string")
}

func multiline() parse.Parser[rune, string] {
	delim := parse.String[rune](`"""`)
	body := parse.Text(parse.Many0(parse.SkipLeft(parse.Not(delim), parse.AnyElem[rune]())))
	return parse.Surround(delim, body, delim).Name("multi-line string")
}

// unquoted matches a run of characters outside stop, whitespace and the
// comment start "//".
func unquoted(stop string) parse.Parser[rune, string] {
	char := parse.ElemMatching(func(c rune) bool { return !isSpace(c) && !strings.ContainsRune(stop, c) })
	return parse.Text(parse.Many1(parse.SkipLeft(parse.Not(parse.String[rune]("//")), char)))
}

func keyPath() parse.Parser[rune, []string] {
	segment := parse.Or(quoted(), unquoted(forbidden+"."))
	return parse.Many1Sep(segment, parse.Elem('.')).Name("key")
}

// classify gives a lone unquoted token its literal type.
func classify(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null{}
	}
	if _, err := parse.Run(number, []rune(s)); err == nil {
		return Number(s)
	}
	return String(s)
}

var number = parse.SkipRight(parse.Float[rune, float64](), parse.End[rune]())

type piece struct {
	value    Value
	unquoted bool
}

type field struct {
	path  []string
	value Value
}

func concat(p parse.Pair[piece, []parse.Pair[string, piece]]) Value {
	if len(p.Second) == 0 {
		if p.First.unquoted {
			return classify(string(p.First.value.(String)))
		}
		return p.First.value
	}
	c := Concat{Parts: []Value{p.First.value}}
	for _, next := range p.Second {
		c.Gaps = append(c.Gaps, next.First)
		c.Parts = append(c.Parts, next.Second.value)
	}
	return c
}

func build(fields []field) *Object {
	o := NewObject()
	for _, f := range fields {
		o.setPath(f.path, f.value)
	}
	return o
}

// Parser returns the HOCON grammar. The result has duplicate keys merged
// but substitutions and concatenations left unresolved.
func Parser() parse.Parser[rune, *Object] {
	comment := parse.Discard(parse.And(
		parse.Or(parse.String[rune]("#"), parse.String[rune]("//")),
		parse.TakeWhile0(func(c rune) bool { return c != '\n' }),
	))
	ws := parse.Discard(parse.Many0(parse.Or(parse.Discard(parse.TakeWhile1(isSpace)), comment)))
	inline := parse.Text(parse.TakeWhile0(isInlineSpace))
	sep := parse.Discard(parse.And(ws, parse.Opt(parse.And(parse.Elem(','), ws))))
	key := keyPath()

	var value parse.Parser[rune, Value]
	ref := parse.Lazy(func() parse.Parser[rune, Value] { return value })

	var object parse.Parser[rune, *Object]
	objectRef := parse.Lazy(func() parse.Parser[rune, *Object] { return object })
	objectValue := parse.Map(objectRef, func(o *Object) Value { return o })

	fieldValue := parse.Or(objectValue, parse.SkipLeft(parse.SkipLeft(parse.OneOf[rune]("=:"), ws), ref))
	member := parse.Map(
		parse.And(parse.SkipRight(key, inline), fieldValue),
		func(p parse.Pair[[]string, Value]) field { return field{path: p.First, value: p.Second} },
	)
	body := parse.Map(parse.SkipLeft(ws, parse.Many0(parse.SkipRight(member, sep))), build)
	object = parse.Surround(parse.Elem('{'), body, parse.Elem('}')).Name("object")

	array := parse.Map(
		parse.Surround(parse.SkipRight(parse.Elem('['), ws), parse.Many0(parse.SkipRight(ref, sep)), parse.Elem(']')),
		func(vs []Value) Value { return Array(vs) },
	).Name("array")

	substitution := parse.Map(
		parse.SkipLeft(parse.String[rune]("${"), parse.SkipRight(
			parse.And(parse.Opt(parse.Elem('?')), parse.Surround(inline, key, inline)),
			parse.Elem('}'),
		)),
		func(p parse.Pair[parse.Option[rune], []string]) Value {
			return Substitution{Path: p.Second, Optional: p.First.Ok}
		},
	).Name("substitution")

	literal := func(s string) piece { return piece{value: String(s)} }
	single := parse.Or(
		parse.Map(objectValue, func(v Value) piece { return piece{value: v} }),
		parse.Map(array, func(v Value) piece { return piece{value: v} }),
		parse.Map(substitution, func(v Value) piece { return piece{value: v} }),
		parse.Map(multiline(), literal),
		parse.Map(quoted(), literal),
		parse.Map(unquoted(forbidden), func(s string) piece { return piece{value: String(s), unquoted: true} }),
	)
	value = parse.Map(parse.And(single, parse.Many0(parse.Attempt(parse.And(inline, single)))), concat).Name("value")

	root := parse.Or(parse.SkipRight(object, ws), body)
	return parse.SkipLeft(ws, parse.SkipRight(root, parse.End[rune]())).Name("document")
}

var (
	document   = Parser()
	pathParser = parse.SkipRight(keyPath(), parse.End[rune]())
)

// Parse parses src without resolving it.
func Parse(src string) (*Object, error) {
	return parse.Run(document, []rune(src))
}

// SplitPath splits a dotted path such as `a."b.c".d` into its keys.
func SplitPath(p string) ([]string, error) {
	keys, err := parse.Run(pathParser, []rune(p))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", p, err)
	}
	return keys, nil
}
