package main

import (
	"github.com/spf13/cobra"

	"ocl/repl"
)

func newReplCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse constraints interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), s.ParserOptions())
		},
	}
}
