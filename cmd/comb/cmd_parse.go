package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/format"
	"github.com/dhamidi/comb/grammar/json"
	"github.com/dhamidi/comb/parse"
	"github.com/dhamidi/comb/workspace"
)

func newParseCmd() *cobra.Command {
	var lang string
	var backend string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and print its value",
		Long: `Parse a document and print its value. The language is taken from the
file extension unless --lang is given; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			l, err := resolveLanguage(lang, filename)
			if err != nil {
				return err
			}

			data, err := readInput(filename)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			var value any
			switch backend {
			case "dynamic":
				value, err = l.Parse(data)
			case "static":
				if l.Name != "json" {
					return fmt.Errorf("the static backend only has a json grammar")
				}
				value, err = json.ParseStatic(data)
			default:
				return fmt.Errorf("unknown backend: %s", backend)
			}
			if err != nil {
				printDiagnostic(os.Stderr, l, filename, data, err)
				return reportedError{err}
			}

			if err := encoder.Encode(value); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "document language (json, hocon, cron, calc, uri)")
	cmd.Flags().StringVarP(&backend, "backend", "b", "dynamic", "parser backend (dynamic, static)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")

	return cmd
}

func resolveLanguage(name, filename string) (*workspace.Language, error) {
	if name != "" {
		l := workspace.LanguageNamed(name)
		if l == nil {
			return nil, fmt.Errorf("unknown language: %s", name)
		}
		return l, nil
	}
	l := workspace.LanguageFor(filename)
	if l == nil {
		return nil, fmt.Errorf("cannot tell the language of %s, use --lang", filename)
	}
	return l, nil
}

func readInput(filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}
	return data, nil
}

// printDiagnostic reports err against data. Parse failures quote the
// offending line; other failures are printed with the position they carry.
func printDiagnostic(w io.Writer, l *workspace.Language, name string, data []byte, err error) {
	colored := !color.NoColor
	var perr *parse.Error
	if !errors.As(err, &perr) {
		doc := &workspace.Document{Path: name, Language: l, Content: data, Err: err}
		for _, d := range doc.Diagnostics() {
			fmt.Fprintln(w, d)
		}
		return
	}
	if l.Runes {
		format.Diagnostic(w, name, []rune(string(data)), err, colored)
		return
	}
	format.Diagnostic(w, name, data, err, colored)
}
