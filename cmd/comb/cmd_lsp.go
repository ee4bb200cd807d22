package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/comb/workspace"
)

func newLSPCmd() *cobra.Command {
	var extensions []string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that reports parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := extensionOptions(extensions)
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(version, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "extra extensions as lang=ext, e.g. hocon=cfg")

	return cmd
}
