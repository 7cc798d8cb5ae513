// Command mstd is the MST graph-analysis service and its line client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mstd",
		Short:         "Concurrent minimum spanning tree service",
		Long:          `mstd serves a shared weighted graph over a line-oriented TCP protocol and computes minimum spanning trees (Kruskal, Prim, Borůvka) with distance metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newSendCommand(), newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mstd %s (commit %s, built %s)\n", version, commit, buildDate)
		},
	}
}
