package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/JonMunkholm/StatsBot/internal/tablefmt"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the registered tables and their columns",
	Args:  cobra.NoArgs,
	RunE:  runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	for _, info := range tablefmt.Tables() {
		fmt.Fprintf(w, "%s\t%s\n", info.Key, info.Label)
		for i, col := range info.Columns {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", i+1, col, info.Kinds[i])
		}
	}
	return w.Flush()
}
