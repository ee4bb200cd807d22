package cron

import (
	"fmt"
	"strings"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

// Entry is one scheduled line of a crontab. Offset is where the line's
// expression starts in the file.
type Entry struct {
	Spec    Spec   `json:"spec"`
	Command string `json:"command"`
	Offset  int    `json:"offset"`
}

func (e Entry) String() string { return e.Spec.String() + "\t" + e.Command }

func notNewline(c byte) bool { return c != '\n' }

// TabParser returns the grammar of a crontab: one entry per line, blank
// lines and '#' comments ignored.
func TabParser() parse.Parser[byte, []Entry] {
	blank := parse.TakeWhile0(element.IsSpace[byte])
	eol := parse.Or(parse.Discard(parse.Elem(byte('\n'))), parse.End[byte]())
	comment := parse.And(parse.Elem(byte('#')), parse.TakeWhile0(notNewline))
	command := parse.Map(parse.Text(parse.TakeWhile1(notNewline)), strings.TrimSpace).Name("command")

	entry := parse.Map(
		parse.Spanned(parse.And(parse.SkipRight(expression(), parse.TakeWhile1(element.IsSpace[byte])), command)),
		func(s parse.Span[parse.Pair[Spec, string]]) Entry {
			return Entry{Spec: s.Value.First, Command: s.Value.Second, Offset: s.Offset}
		},
	).Name("entry")

	line := parse.Surround(blank, parse.Or(
		parse.Map(entry, parse.Some[Entry]),
		parse.Const(comment, parse.Option[Entry]{}),
		parse.Pure[byte](parse.Option[Entry]{}),
	), parse.SkipLeft(blank, eol))

	tab := parse.Map(parse.Many0(line), func(lines []parse.Option[Entry]) []Entry {
		var entries []Entry
		for _, l := range lines {
			if l.Ok {
				entries = append(entries, l.Value)
			}
		}
		return entries
	})
	return parse.SkipRight(tab, parse.End[byte]())
}

var tabParser = TabParser()

// ParseTab parses the contents of a crontab file.
func ParseTab(src []byte) ([]Entry, error) {
	entries, err := parse.Run(tabParser, src)
	if err != nil {
		return nil, fmt.Errorf("parse crontab: %w", err)
	}
	return entries, nil
}
