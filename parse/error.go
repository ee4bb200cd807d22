package parse

import (
	"fmt"
	"slices"
	"strings"
)

// Kind classifies a parse error.
type Kind uint8

const (
	// KindMismatch: the tokens at Offset did not match.
	KindMismatch Kind = iota + 1
	// KindConversion: the tokens matched but the value could not be built.
	KindConversion
	// KindIncomplete: the input ended early.
	KindIncomplete
	// KindExpect: Inner failed while parsing what Message names.
	KindExpect
	// KindCustom: a failure raised by grammar code.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindMismatch:
		return "mismatch"
	case KindConversion:
		return "conversion"
	case KindIncomplete:
		return "incomplete"
	case KindExpect:
		return "expect"
	case KindCustom:
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a structured parse failure. It is not parameterized by the token
// type so callers can reach it with errors.As from any grammar.
type Error struct {
	Kind    Kind
	Offset  int
	Length  int
	Message string
	// Inner is the error being labelled, for Expect and Custom errors.
	Inner *Error
	// Cause is the conversion error returned by a Convert function.
	Cause error

	// alts are the failures of alternatives that stopped at the same
	// offset. Message is derived from them.
	alts []*Error
	src  any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIncomplete:
		if e.Message == "" {
			return fmt.Sprintf("unexpected end of input at offset %d", e.Offset)
		}
		return fmt.Sprintf("unexpected end of input at offset %d: expected %s", e.Offset, e.Message)
	case KindExpect, KindCustom:
		if e.Inner == nil {
			return fmt.Sprintf("%s at offset %d", e.label(), e.Offset)
		}
		return fmt.Sprintf("%s at offset %d: %s", e.label(), e.Offset, e.Inner.Error())
	case KindConversion:
		return fmt.Sprintf("invalid %q at offset %d: %s", e.Fragment(), e.Offset, e.Message)
	}
	if e.Length > 0 {
		return fmt.Sprintf("expected %s at offset %d, found %q", e.Message, e.Offset, e.Fragment())
	}
	return fmt.Sprintf("expected %s at offset %d", e.Message, e.Offset)
}

// Unwrap exposes the labelled error, or the conversion cause.
func (e *Error) Unwrap() error {
	if e.Inner != nil {
		return e.Inner
	}
	if e.Cause != nil {
		return e.Cause
	}
	return nil
}

// Root follows Inner to the innermost error.
func (e *Error) Root() *Error {
	for e.Inner != nil {
		e = e.Inner
	}
	return e
}

// Chain lists the error and every Inner error, outermost first.
func (e *Error) Chain() []*Error {
	var chain []*Error
	for ; e != nil; e = e.Inner {
		chain = append(chain, e)
	}
	return chain
}

// Labels returns the Expect labels of the chain, outermost first.
func (e *Error) Labels() []string {
	var labels []string
	for _, c := range e.Chain() {
		if c.Kind == KindExpect {
			labels = append(labels, c.label())
		}
	}
	return labels
}

// Fragment returns the input span the error covers as a string. Only byte
// and rune inputs can be rendered; other token types yield "".
func (e *Error) Fragment() string {
	end := e.Offset + e.Length
	switch in := e.src.(type) {
	case []byte:
		if end <= len(in) {
			return string(in[e.Offset:end])
		}
	case []rune:
		if end <= len(in) {
			return string(in[e.Offset:end])
		}
	}
	return ""
}

// Input returns the input the error was raised against.
func (e *Error) Input() any { return e.src }

// Furthest returns the error in the chain with the largest offset, the
// innermost one on ties. Useful to report the deepest point a failed parse
// reached.
func (e *Error) Furthest() *Error {
	best := e
	for c := e.Inner; c != nil; c = c.Inner {
		if c.Offset >= best.Offset {
			best = c
		}
	}
	return best
}

func (e *Error) depth() int {
	d := e.Offset
	for c := e.Inner; c != nil; c = c.Inner {
		d = max(d, c.Offset)
	}
	return d
}

// Alternatives returns the failures of the alternatives an Or tried when
// none of them got further than the others, or nil.
func (e *Error) Alternatives() []*Error { return e.alts }

func (e *Error) label() string {
	if e.alts == nil {
		return e.Message
	}
	var seen []string
	for _, a := range e.alts {
		if a.Kind == KindConversion || a.Message == "" || slices.Contains(seen, a.Message) {
			continue
		}
		seen = append(seen, a.Message)
	}
	switch len(seen) {
	case 0:
		return "one of the alternatives"
	case 1:
		return seen[0]
	}
	return "one of " + strings.Join(seen, ", ")
}

func (e *Error) alternatives() []*Error {
	if e.alts != nil {
		return e.alts
	}
	return []*Error{e}
}

// Either picks the failure to report when alternatives a and b both failed
// at the same position: the one that got further, or, when both stopped at
// the same offset, an Expect error listing what each wanted. Its Inner is
// b's error, so Root is unchanged for callers that only look there.
func Either(a, b *Error) *Error {
	da, db := a.depth(), b.depth()
	switch {
	case da > db:
		return a
	case db > da:
		return b
	}
	inner := b
	if b.alts != nil {
		inner = b.Inner
	}
	alts := append(slices.Clip(a.alternatives()), b.alternatives()...)
	return &Error{Kind: KindExpect, Offset: db, Inner: inner, alts: alts, src: b.src}
}

// Summary renders the whole chain without offsets, outermost label first,
// for reports that give the position separately.
func (e *Error) Summary() string {
	var b strings.Builder
	for i, c := range e.Chain() {
		if i > 0 {
			b.WriteString(": ")
		}
		switch c.Kind {
		case KindExpect, KindCustom:
			b.WriteString(c.label())
		default:
			b.WriteString(strings.Replace(c.Error(), fmt.Sprintf(" at offset %d", c.Offset), "", 1))
		}
	}
	return b.String()
}
