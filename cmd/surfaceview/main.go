package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "surfaceview",
		Short: "surfaceview - minimal surface viewer",
		Long: `surfaceview drives a minimal-surface generation service: it submits the
selected surface parameters, turns the sampled grid into an interactive 3D
plot and writes or serves the result.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(rootCmd)

	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newTUICommand(flags))
	rootCmd.AddCommand(newPageCommand(flags))
	return rootCmd
}
