package workspace

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dhamidi/comb/grammar/calc"
	"github.com/dhamidi/comb/grammar/cron"
	"github.com/dhamidi/comb/grammar/hocon"
	"github.com/dhamidi/comb/grammar/json"
	"github.com/dhamidi/comb/grammar/uri"
	"github.com/dhamidi/comb/parse"
)

// Language is a kind of document the workspace knows how to check.
type Language struct {
	Name       string
	Extensions []string
	// Runes is set for grammars that read runes: their error offsets count
	// characters, not bytes.
	Runes bool
	// Grammar is the EBNF documentation of the syntax, Start its start
	// production.
	Grammar string
	Start   string
	// Parse returns the document's value. The value encodes as JSON.
	Parse func(src []byte) (any, error)
	// Lint finds suspicious parts of a document that parsed. Optional.
	Lint func(value any) []Problem
}

// Problem is a lint finding at Offset of the source.
type Problem struct {
	Offset  int
	Message string
}

// Locate converts an offset reported by the language's parser into a
// position of src.
func (l *Language) Locate(src []byte, offset int) parse.Position {
	if l.Runes {
		return parse.Locate([]rune(string(src)), offset)
	}
	return parse.Locate(src, offset)
}

// Describe renders err against src, quoting the offending line.
func (l *Language) Describe(name string, src []byte, err error) string {
	if l.Runes {
		return parse.Describe(name, []rune(string(src)), err)
	}
	return parse.Describe(name, src, err)
}

var languages = []*Language{
	{
		Name:       "json",
		Extensions: []string{".json"},
		Grammar:    json.Grammar,
		Start:      "JSON",
		Parse: func(src []byte) (any, error) {
			return json.Parse(src)
		},
	},
	{
		Name:       "hocon",
		Extensions: []string{".conf", ".hocon"},
		Runes:      true,
		Grammar:    hocon.Grammar,
		Start:      "Document",
		Parse: func(src []byte) (any, error) {
			cfg, err := hocon.Load(string(src))
			if err != nil {
				return nil, err
			}
			return cfg.Root(), nil
		},
	},
	{
		Name:       "cron",
		Extensions: []string{".cron", ".crontab"},
		Grammar:    cron.Grammar,
		Start:      "Cron",
		Parse: func(src []byte) (any, error) {
			return cron.ParseTab(src)
		},
		Lint: lintCrontab,
	},
	{
		Name:       "calc",
		Extensions: []string{".calc"},
		Runes:      true,
		Grammar:    calc.Grammar,
		Start:      "Program",
		Parse: func(src []byte) (any, error) {
			return calc.Run(string(src))
		},
	},
	{
		Name:  "uri",
		Runes: true,
		Parse: func(src []byte) (any, error) {
			return uri.Parse(strings.TrimRight(string(src), "\r\n"))
		},
	},
}

// lintCrontab flags entries that select no time, such as February 30th.
func lintCrontab(value any) []Problem {
	var problems []Problem
	now := time.Now()
	for _, e := range value.([]cron.Entry) {
		if _, ok := e.Spec.Next(now); !ok {
			problems = append(problems, Problem{Offset: e.Offset, Message: "schedule never fires"})
		}
	}
	return problems
}

// Languages lists the built-in languages.
func Languages() []*Language { return languages }

// LanguageNamed returns the built-in language called name, or nil.
func LanguageNamed(name string) *Language {
	for _, l := range languages {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// LanguageFor returns the built-in language of path by its extension, or
// nil.
func LanguageFor(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l
			}
		}
	}
	return nil
}
