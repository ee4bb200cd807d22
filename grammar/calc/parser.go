package calc

import (
	"fmt"
	"strings"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

var keywords = map[string]bool{"let": true, "print": true}

func isIdentStart(c rune) bool { return element.IsAlpha(c) || c == '_' }

func isIdent(c rune) bool { return element.IsAlphanumeric(c) || c == '_' }

func literal(text string) (Value, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := parse.ParseFloat[float64](text)
		return Float(f), err
	}
	n, err := parse.ParseInteger[int64](text)
	return Int(n), err
}

// Parser returns the grammar of a program. '#' starts a comment that runs
// to the end of the line.
func Parser() parse.Parser[rune, Program] {
	comment := parse.Discard(parse.And(parse.Elem('#'), parse.TakeWhile0(func(c rune) bool { return c != '\n' })))
	ws := parse.Discard(parse.Many0(parse.Or(parse.Discard(parse.TakeWhile1(element.IsWhitespace[rune])), comment)))
	token := func(c rune) parse.Parser[rune, rune] { return parse.SkipRight(parse.Elem(c), ws) }
	keyword := func(k string) parse.Parser[rune, string] {
		return parse.SkipRight(parse.SkipRight(parse.String[rune](k), parse.Not(parse.ElemMatching(isIdent))), ws)
	}

	name := parse.Filter(
		parse.Text(parse.And(parse.ElemMatching(isIdentStart), parse.TakeWhile0(isIdent))),
		func(s string) bool { return !keywords[s] },
	).Name("identifier")
	ident := parse.SkipRight(name, ws)

	digits := parse.TakeWhile1(element.IsDigit[rune])
	frac := parse.Opt(parse.And(parse.Elem('.'), digits))
	exp := parse.Opt(parse.And(parse.OneOf[rune]("eE"), parse.And(parse.Opt(parse.OneOf[rune]("+-")), digits)))
	number := parse.Map(
		parse.Convert(parse.Text(parse.And(digits, parse.And(frac, exp))), literal),
		func(v Value) Expr { return Lit{Value: v} },
	).Name("number")

	variable := parse.Map(parse.Spanned(name), func(s parse.Span[string]) Expr { return Var{Name: s.Value, Pos: s.Offset} })

	var expr parse.Parser[rune, Expr]
	exprRef := parse.Lazy(func() parse.Parser[rune, Expr] { return expr })

	primary := parse.SkipRight(parse.Or(
		number,
		parse.SkipLeft(token('('), parse.SkipRight(exprRef, parse.Elem(')'))),
		variable,
	), ws)

	var unary parse.Parser[rune, Expr]
	unaryRef := parse.Lazy(func() parse.Parser[rune, Expr] { return unary })
	unary = parse.Or(
		parse.Map(parse.SkipLeft(token('-'), unaryRef), func(x Expr) Expr { return Neg{X: x} }),
		primary,
	)

	op := func(ops string) parse.Parser[rune, func(Expr, Expr) Expr] {
		return parse.Map(parse.SkipRight(parse.Spanned(parse.OneOf[rune](ops)), ws), func(s parse.Span[rune]) func(Expr, Expr) Expr {
			return func(x, y Expr) Expr { return Binary{Op: s.Value, X: x, Y: y, Pos: s.Offset} }
		})
	}
	term := parse.ChainLeft1(unary, op("*/%"))
	expr = parse.ChainLeft1(term, op("+-")).Name("expression")

	semi := token(';')
	letStmt := parse.Map(
		parse.SkipLeft(keyword("let"), parse.And(parse.SkipRight(ident, token('=')), parse.SkipRight(expr, semi))),
		func(p parse.Pair[string, Expr]) Stmt { return Let{Name: p.First, X: p.Second} },
	).Name("let statement")
	printStmt := parse.Map(
		parse.SkipLeft(keyword("print"), parse.SkipRight(expr, semi)),
		func(x Expr) Stmt { return Print{X: x} },
	).Name("print statement")

	program := parse.Map(parse.Many0(parse.Or(letStmt, printStmt)), func(ss []Stmt) Program { return Program(ss) })
	return parse.SkipLeft(ws, parse.SkipRight(program, parse.End[rune]()))
}

var parser = Parser()

// Parse parses a program.
func Parse(src string) (Program, error) {
	p, err := parse.Run(parser, []rune(src))
	if err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	return p, nil
}
