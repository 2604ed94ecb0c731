// Package cmd implements the joule CLI: the "serve" subcommand that
// speaks LSP over stdio, plus "tree" and "index" developer utilities
// for inspecting what the analyzer sees without an editor attached.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the joule root command and all its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "joule",
		Short:         "a Jsonnet language server and inspection CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newIndexCmd())
	return root
}
