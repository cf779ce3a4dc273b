// Package cli implements the bvmc command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bvmc/bvmc/pkg/version"
)

// NewRootCmd returns the bvmc command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bvmc",
		Short:         "Bounded model checking for bit-vector transition systems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCheckCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bvmc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}
