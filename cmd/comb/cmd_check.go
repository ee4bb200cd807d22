package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/workspace"
)

func newCheckCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	var extensions []string

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse every known document under a directory and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			opts, err := extensionOptions(extensions)
			if err != nil {
				return err
			}
			ws := workspace.New(dir, opts...)

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return runWatch(ctx, ws, interval)
			}

			if err := ws.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}
			failed := 0
			docs := ws.Documents()
			for _, doc := range docs {
				if doc.Err != nil {
					failed++
					printDiagnostic(os.Stderr, doc.Language, doc.Path, doc.Content, doc.Err)
					continue
				}
				for _, d := range doc.Diagnostics() {
					fmt.Fprintln(os.Stderr, d)
				}
			}
			fmt.Printf("%d documents, %d with errors\n", len(docs), failed)
			if failed > 0 {
				return reportedError{fmt.Errorf("%d documents with errors", failed)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling and report documents as they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval with --watch")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "extra extensions as lang=ext, e.g. hocon=cfg")

	return cmd
}

func extensionOptions(specs []string) ([]workspace.Option, error) {
	var opts []workspace.Option
	for _, spec := range specs {
		lang, ext, ok := strings.Cut(spec, "=")
		if !ok || ext == "" || workspace.LanguageNamed(lang) == nil {
			return nil, fmt.Errorf("bad --ext %q: want lang=ext with a known language", spec)
		}
		opts = append(opts, workspace.WithExtensions(lang, ext))
	}
	return opts, nil
}

func runWatch(ctx context.Context, ws *workspace.Workspace, interval time.Duration) error {
	fw := workspace.NewFileWatcher(ws, interval)
	fw.OnChange(func(path string, doc *workspace.Document) {
		reportChange(os.Stdout, path, doc)
	})
	fw.Start()
	defer fw.Stop()
	<-ctx.Done()
	return nil
}

func reportChange(w io.Writer, path string, doc *workspace.Document) {
	switch {
	case doc == nil:
		fmt.Fprintf(w, "removed %s\n", path)
	case doc.Err != nil:
		printDiagnostic(w, doc.Language, path, doc.Content, doc.Err)
	default:
		for _, d := range doc.Diagnostics() {
			fmt.Fprintln(w, d)
		}
		fmt.Fprintf(w, "ok %s\n", path)
	}
}
