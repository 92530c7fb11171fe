package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/joltage/internal/bank"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <bank> <k>",
		Short: "Show the best k batteries of a single bank",
		Long: `Select k batteries from one bank and print the joltage together with
the 0-based positions of the chosen batteries.

Examples:
  joltage select 818181911112111 2
  joltage select 234234234234278 12`,
		Args: cobra.ExactArgs(2),
		RunE: runSelect,
	}
}

func runSelect(cmd *cobra.Command, args []string) error {
	k, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid k %q: %w", args[1], err)
	}

	seq, err := bank.ParseLine(args[0])
	if err != nil {
		return err
	}

	sel, err := bank.SelectMax(seq, k)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "joltage: %s\n", sel)
	fmt.Fprintf(out, "indices: %v\n", sel.Indices())
	return nil
}
