package cron

import (
	"fmt"
	"strings"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

type field struct {
	name     string
	min, max int
	names    map[string]int
	last     bool
}

var (
	minuteField = field{name: "minute", min: 0, max: 59}
	hourField   = field{name: "hour", min: 0, max: 23}
	domField    = field{name: "day-of-month", min: 1, max: 31, last: true}
	monthField  = field{name: "month", min: 1, max: 12, names: map[string]int{
		"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
		"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
	}}
	dowField = field{name: "day-of-week", min: 0, max: 7, names: map[string]int{
		"SUN": 0, "MON": 1, "TUE": 2, "WED": 3, "THU": 4, "FRI": 5, "SAT": 6,
	}}
)

var descriptors = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

func (f field) check(v int) error {
	if v < f.min || v > f.max {
		return fmt.Errorf("%s %d out of range %d-%d", f.name, v, f.min, f.max)
	}
	return nil
}

func (f field) lookup(name string) (int, error) {
	if v, ok := f.names[strings.ToUpper(name)]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown %s name %q", f.name, name)
}

type item struct {
	base Expr
	step parse.Option[int]
}

// validate checks bounds and folds a step into its base.
func (f field) validate(it item) (Expr, error) {
	switch b := it.base.(type) {
	case Value:
		if err := f.check(int(b)); err != nil {
			return nil, err
		}
	case Range:
		if err := f.check(b.From); err != nil {
			return nil, err
		}
		if err := f.check(b.To); err != nil {
			return nil, err
		}
		if b.From > b.To {
			return nil, fmt.Errorf("%s range %d-%d is decreasing", f.name, b.From, b.To)
		}
	case Last:
		if it.step.Ok {
			return nil, fmt.Errorf("%s L cannot take a step", f.name)
		}
	}
	if !it.step.Ok {
		return it.base, nil
	}
	if it.step.Value < 1 || it.step.Value > f.max {
		return nil, fmt.Errorf("%s step %d out of range 1-%d", f.name, it.step.Value, f.max)
	}
	return Step{Base: it.base, Every: it.step.Value, Min: f.min}, nil
}

func number() parse.Parser[byte, int] {
	return parse.Convert(parse.Text(parse.TakeWhile1(element.IsDigit[byte])), parse.ParseInteger[int])
}

func (f field) parser() parse.Parser[byte, Expr] {
	atom := number()
	if f.names != nil {
		atom = parse.Or(atom, parse.Convert(parse.Text(parse.TakeWhile1(element.IsAlpha[byte])), f.lookup))
	}
	valueOrRange := parse.Map(
		parse.And(atom, parse.Opt(parse.SkipLeft(parse.Elem(byte('-')), atom))),
		func(p parse.Pair[int, parse.Option[int]]) Expr {
			if p.Second.Ok {
				return Range{From: p.First, To: p.Second.Value}
			}
			return Value(p.First)
		},
	)
	bases := []parse.Parser[byte, Expr]{parse.Const(parse.Elem(byte('*')), Expr(Any{}))}
	if f.last {
		bases = append(bases, parse.Const(parse.Elem(byte('L')), Expr(Last{})))
	}
	bases = append(bases, valueOrRange)

	it := parse.Map(
		parse.And(parse.Or(bases...), parse.Opt(parse.SkipLeft(parse.Elem(byte('/')), number()))),
		func(p parse.Pair[Expr, parse.Option[int]]) item { return item{base: p.First, step: p.Second} },
	)
	list := parse.Map(parse.Many1Sep(parse.Convert(it, f.validate), parse.Elem(byte(','))), func(es []Expr) Expr {
		if len(es) == 1 {
			return es[0]
		}
		return List(es)
	})
	return list.Name(f.name)
}

// expression is a cron expression or a descriptor, without surrounding
// blanks.
func expression() parse.Parser[byte, Spec] {
	blank := parse.TakeWhile1(element.IsSpace[byte])
	fields := parse.Map(
		parse.Seq(
			minuteField.parser(),
			parse.SkipLeft(blank, hourField.parser()),
			parse.SkipLeft(blank, domField.parser()),
			parse.SkipLeft(blank, monthField.parser()),
			parse.SkipLeft(blank, dowField.parser()),
		),
		func(es []Expr) Spec {
			return Spec{Minute: es[0], Hour: es[1], DayOfMonth: es[2], Month: es[3], DayOfWeek: es[4]}
		},
	)
	descriptor := parse.Convert(
		parse.Text(parse.And(parse.Elem(byte('@')), parse.TakeWhile1(element.IsAlpha[byte]))),
		func(name string) (Spec, error) {
			expr, ok := descriptors[strings.ToLower(name)]
			if !ok {
				return Spec{}, fmt.Errorf("unknown descriptor %s", name)
			}
			return parse.Run(fields, []byte(expr))
		},
	)
	return parse.Or(descriptor, fields)
}

// Parser returns the grammar of a cron expression, surrounding blanks
// allowed.
func Parser() parse.Parser[byte, Spec] {
	ws := parse.TakeWhile0(element.IsSpace[byte])
	return parse.Surround(ws, expression(), parse.SkipLeft(ws, parse.End[byte]()))
}

var parser = Parser()

// Parse parses a cron expression.
func Parse(expr string) (Spec, error) {
	spec, err := parse.Run(parser, []byte(expr))
	if err != nil {
		return Spec{}, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	return spec, nil
}

// MustParse is Parse that panics on error.
func MustParse(expr string) Spec {
	spec, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return spec
}
