// Package main implements the joltage CLI, which finds the largest joltage
// each battery bank can produce and prints their total.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "joltage",
		Short: "Find the maximum joltage of battery banks",
		Long: `joltage reads battery banks (one line of digits per bank), switches on
a fixed number of batteries in each bank so the digits they spell form the
largest possible number, and prints the sum over all banks.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/joltage/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	cmd.AddCommand(newSolveCmd(opts))
	cmd.AddCommand(newSelectCmd())

	return cmd
}
