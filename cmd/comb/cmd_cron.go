package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/grammar/cron"
	"github.com/dhamidi/comb/workspace"
)

func newCronCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Cron expression tools",
	}

	cmd.AddCommand(newCronNextCmd())
	cmd.AddCommand(newCronListCmd())

	return cmd
}

func newCronNextCmd() *cobra.Command {
	var count int
	var from string

	cmd := &cobra.Command{
		Use:   "next <expression>",
		Short: "Print the next times a cron expression selects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := cron.Parse(args[0])
			if err != nil {
				printDiagnostic(os.Stderr, workspace.LanguageNamed("cron"), "expression", []byte(args[0]), err)
				return reportedError{err}
			}
			start, err := parseTime(from)
			if err != nil {
				return err
			}
			for _, t := range nextTimes(spec, start, count) {
				fmt.Println(t.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of times to print")
	cmd.Flags().StringVar(&from, "from", "", `start time, RFC 3339 or "2006-01-02 15:04" (default now)`)

	return cmd
}

func newCronListCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "list <crontab>",
		Short: "Print the next run of every entry of a crontab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			entries, err := cron.ParseTab(data)
			if err != nil {
				printDiagnostic(os.Stderr, workspace.LanguageNamed("cron"), args[0], data, err)
				return reportedError{err}
			}
			start, err := parseTime(from)
			if err != nil {
				return err
			}
			for _, e := range entries {
				next := "never"
				if t, ok := e.Spec.Next(start); ok {
					next = t.Format(time.RFC3339)
				}
				fmt.Printf("%s\t%s\t%s\n", next, e.Spec, e.Command)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", `start time, RFC 3339 or "2006-01-02 15:04" (default now)`)

	return cmd
}

func nextTimes(spec cron.Spec, start time.Time, count int) []time.Time {
	var times []time.Time
	t := start
	for len(times) < count {
		next, ok := spec.Next(t)
		if !ok {
			break
		}
		times = append(times, next)
		t = next
	}
	return times
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}
