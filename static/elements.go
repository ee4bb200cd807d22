package static

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

// Token matchers are nodes of their own. They raise the same errors as the
// matchers of package parse.

type matchNode[T any] struct {
	pred    func(T) bool
	message string
}

func (n matchNode[T]) run(s parse.State[T]) parse.Result[T, T] {
	c, ok := s.Peek()
	if !ok {
		return parse.Failure[T, T](s.IncompleteError(n.message), parse.Uncommitted)
	}
	if !n.pred(c) {
		return parse.Failure[T, T](s.MismatchError(1, n.message), parse.Uncommitted)
	}
	return parse.Success(c, s, 1)
}

func ElemMatching[T any](pred func(T) bool) Parser[T, T, matchNode[T]] {
	return wrap[T, T](matchNode[T]{pred, "matching element"})
}

type elemNode[T comparable] struct {
	e       T
	message string
}

func (n elemNode[T]) run(s parse.State[T]) parse.Result[T, T] {
	c, ok := s.Peek()
	if !ok {
		return parse.Failure[T, T](s.IncompleteError(n.message), parse.Uncommitted)
	}
	if c != n.e {
		return parse.Failure[T, T](s.MismatchError(1, n.message), parse.Uncommitted)
	}
	return parse.Success(c, s, 1)
}

func Elem[T comparable](e T) Parser[T, T, elemNode[T]] {
	return wrap[T, T](elemNode[T]{e, parse.Quote(e)})
}

type setNode[T element.Element] struct {
	set     element.Set[T]
	in      bool
	message string
}

func (n setNode[T]) run(s parse.State[T]) parse.Result[T, T] {
	c, ok := s.Peek()
	if !ok {
		return parse.Failure[T, T](s.IncompleteError(n.message), parse.Uncommitted)
	}
	if n.set.Contains(c) != n.in {
		return parse.Failure[T, T](s.MismatchError(1, n.message), parse.Uncommitted)
	}
	return parse.Success(c, s, 1)
}

func ElemIn[T element.Element](set element.Set[T]) Parser[T, T, setNode[T]] {
	return wrap[T, T](setNode[T]{set, true, "element in set"})
}

func ElemNotIn[T element.Element](set element.Set[T]) Parser[T, T, setNode[T]] {
	return wrap[T, T](setNode[T]{set, false, "element not in set"})
}

func OneOf[T element.Element](chars string) Parser[T, T, setNode[T]] {
	return wrap[T, T](setNode[T]{element.Chars[T](chars), true, "one of " + strconv.Quote(chars)})
}

func NoneOf[T element.Element](chars string) Parser[T, T, setNode[T]] {
	return wrap[T, T](setNode[T]{element.Chars[T](chars), false, "none of " + strconv.Quote(chars)})
}

type anyNode[T any] struct{}

func (anyNode[T]) run(s parse.State[T]) parse.Result[T, T] {
	c, ok := s.Peek()
	if !ok {
		return parse.Failure[T, T](s.IncompleteError("any element"), parse.Uncommitted)
	}
	return parse.Success(c, s, 1)
}

func AnyElem[T any]() Parser[T, T, anyNode[T]] { return wrap[T, T](anyNode[T]{}) }

type takeNode[T any] struct{ n int }

func (n takeNode[T]) run(s parse.State[T]) parse.Result[T, []T] {
	ts, ok := s.Slice(n.n)
	if !ok {
		return parse.Failure[T, []T](s.IncompleteError(fmt.Sprintf("%d elements", n.n)), parse.Uncommitted)
	}
	return parse.Success(ts, s, n.n)
}

func Take[T any](n int) Parser[T, []T, takeNode[T]] { return wrap[T, []T](takeNode[T]{n}) }

type takeWhileNode[T any] struct {
	pred func(T) bool
	min  int
}

func (n takeWhileNode[T]) run(s parse.State[T]) parse.Result[T, []T] {
	rest := s.Remaining()
	i := 0
	for i < len(rest) && n.pred(rest[i]) {
		i++
	}
	if i < n.min {
		if i == len(rest) {
			return parse.Failure[T, []T](s.IncompleteError("matching element"), parse.Uncommitted)
		}
		return parse.Failure[T, []T](s.Advance(i).MismatchError(1, "matching element"), parse.Uncommitted)
	}
	return parse.Success(rest[:i:i], s, i)
}

func TakeWhile0[T any](pred func(T) bool) Parser[T, []T, takeWhileNode[T]] {
	return wrap[T, []T](takeWhileNode[T]{pred, 0})
}

func TakeWhile1[T any](pred func(T) bool) Parser[T, []T, takeWhileNode[T]] {
	return wrap[T, []T](takeWhileNode[T]{pred, 1})
}

type tagNode[T comparable] struct {
	lit     []T
	message string
}

func (n tagNode[T]) run(s parse.State[T]) parse.Result[T, []T] {
	rest := s.Remaining()
	for i, c := range n.lit {
		if i >= len(rest) {
			return parse.Failure[T, []T](s.IncompleteError(n.message), parse.Uncommitted)
		}
		if rest[i] != c {
			return parse.Failure[T, []T](s.MismatchError(i+1, n.message), parse.Uncommitted)
		}
	}
	return parse.Success(rest[:len(n.lit):len(n.lit)], s, len(n.lit))
}

func Tag[T comparable](lit ...T) Parser[T, []T, tagNode[T]] {
	return wrap[T, []T](tagNode[T]{lit, parse.QuoteAll(lit)})
}

type stringNode[T element.Element] struct {
	tag tagNode[T]
	str string
}

func (n stringNode[T]) run(s parse.State[T]) parse.Result[T, string] {
	r := n.tag.run(s)
	if r.Err != nil {
		return parse.Retype[string](r)
	}
	return parse.Result[T, string]{Value: n.str, Consumed: r.Consumed, Next: r.Next}
}

func String[T element.Element](str string) Parser[T, string, stringNode[T]] {
	lit := parse.Tokens[T](str)
	return wrap[T, string](stringNode[T]{tagNode[T]{lit, parse.QuoteAll(lit)}, str})
}

type regexNode[T element.Element] struct {
	re      *regexp.Regexp
	message string
}

func (n regexNode[T]) run(s parse.State[T]) parse.Result[T, string] {
	rest := s.Remaining()
	m, ok := parse.MatchRegex(n.re, rest)
	if !ok {
		if s.AtEnd() {
			return parse.Failure[T, string](s.IncompleteError(n.message), parse.Uncommitted)
		}
		return parse.Failure[T, string](s.MismatchError(1, n.message), parse.Uncommitted)
	}
	return parse.Success(parse.ToString(rest[:m]), s, m)
}

// Regex panics if expr does not compile.
func Regex[T element.Element](expr string) Parser[T, string, regexNode[T]] {
	return wrap[T, string](regexNode[T]{parse.CompileRegex(expr), "match of /" + expr + "/"})
}

type endNode[T any] struct{}

func (endNode[T]) run(s parse.State[T]) parse.Result[T, struct{}] {
	if !s.AtEnd() {
		return parse.Failure[T, struct{}](s.MismatchError(1, "end of input"), parse.Uncommitted)
	}
	return parse.Success(struct{}{}, s, 0)
}

func End[T any]() Parser[T, struct{}, endNode[T]] { return wrap[T, struct{}](endNode[T]{}) }

type offsetNode[T any] struct{}

func (offsetNode[T]) run(s parse.State[T]) parse.Result[T, int] {
	return parse.Success(s.Offset(), s, 0)
}

func Offset[T any]() Parser[T, int, offsetNode[T]] { return wrap[T, int](offsetNode[T]{}) }
