package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/comb/workspace"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebnf",
		Short: "EBNF grammar tools",
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfPrintCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string
	var lang string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file or a built-in grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			var src io.Reader
			switch {
			case lang != "":
				l, err := grammarLanguage(lang)
				if err != nil {
					return err
				}
				name, src = l.Name+".ebnf", strings.NewReader(l.Grammar)
				if startProduction == "" {
					startProduction = l.Start
				}
			case len(args) == 1:
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				name, src = args[0], f
			default:
				return fmt.Errorf("give a file or --lang")
			}

			grammar, err := ebnf.Parse(name, src)
			if err != nil {
				printErrors(err)
				return reportedError{err}
			}

			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(err)
					return reportedError{err}
				}
			}

			fmt.Printf("%s: %d productions ok\n", name, len(grammar))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "check the grammar of a built-in language")

	return cmd
}

func newEbnfPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <lang>",
		Short: "Print the EBNF grammar of a built-in language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := grammarLanguage(args[0])
			if err != nil {
				return err
			}
			fmt.Print(l.Grammar)
			return nil
		},
	}
}

func grammarLanguage(name string) (*workspace.Language, error) {
	l := workspace.LanguageNamed(name)
	if l == nil {
		return nil, fmt.Errorf("unknown language: %s", name)
	}
	if l.Grammar == "" {
		return nil, fmt.Errorf("%s has no EBNF grammar", name)
	}
	return l, nil
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
