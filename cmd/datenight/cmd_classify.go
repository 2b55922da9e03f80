package main

import (
	"fmt"

	"datenight/internal/neighborhood"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <address>...",
	Short: "Print the neighborhood an address maps to and why",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	c := neighborhood.NewClassifier()
	for _, addr := range args {
		m := c.ClassifyWithReason(addr)
		if m.Pattern != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s: %s)\n", addr, m.Name, m.Source, m.Pattern)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", addr, m.Name, m.Source)
		}
	}
	return nil
}
