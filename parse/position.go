package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/comb/element"
)

// Position is a location in the input. Line and Column are 1-based; Column
// counts tokens, so it is a byte column for byte input and a character
// column for rune input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate converts offset into a line and column of input. Offsets past the
// end are clamped.
func Locate[T element.Element](input []T, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	pos := Position{Offset: offset, Line: 1, Column: 1}
	for _, c := range input[:offset] {
		if c == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// lineAt returns the bounds of the line containing offset, without the
// line terminator.
func lineAt[T element.Element](input []T, offset int) (int, int) {
	if offset > len(input) {
		offset = len(input)
	}
	start := offset
	for start > 0 && input[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(input) && input[end] != '\n' {
		end++
	}
	if end > start && input[end-1] == '\r' {
		end--
	}
	return start, end
}

// Describe renders err for a human:
//
//	name:line:col: message
//	    the offending line
//	    ^^^
//
// Errors that are not *Error are rendered as "name: message".
func Describe[T element.Element](name string, input []T, err error) string {
	var perr *Error
	if !errors.As(err, &perr) {
		return fmt.Sprintf("%s: %v", name, err)
	}
	at := perr.Furthest()
	pos := Locate(input, at.Offset)
	pos.Filename = name

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", pos, perr.Summary())

	start, end := lineAt(input, pos.Offset)
	bytes := element.IsByte[T]()
	b.WriteString("    ")
	for _, c := range input[start:end] {
		if bytes {
			b.WriteByte(byte(c))
		} else {
			b.WriteRune(rune(c))
		}
	}
	b.WriteString("\n    ")
	for _, c := range input[start:pos.Offset] {
		if bytes && c&0xc0 == 0x80 {
			continue // UTF-8 continuation byte
		}
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	width := at.Length
	if width < 1 {
		width = 1
	}
	if pos.Offset+width > end {
		width = max(1, end-pos.Offset)
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
