package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bitmapindex/indexer/internal/report"
)

var filterCmd = &cobra.Command{
	Use:   "filter <report.html> [route]",
	Short: "List the rows of a generated report whose route contains a text",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		query := ""
		if len(args) > 1 {
			query = args[1]
		}

		matches, err := report.FilterRoutes(f, query)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		for _, m := range matches {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", m.Route, m.Destination, m.Sequence, strings.Join(m.Versions, ", "))
		}
		return nil
	},
}
