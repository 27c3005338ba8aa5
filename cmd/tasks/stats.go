package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by priority and status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	stats := m.Statistics()
	if statsJSON {
		return encodeJSON(cmd.OutOrStdout(), stats)
	}
	printStatistics(cmd.OutOrStdout(), stats)
	return nil
}

func printStatistics(w io.Writer, stats task.Statistics) {
	fmt.Fprintf(w, "Total:     %d\n", stats.Total)
	fmt.Fprintf(w, "Completed: %d\n", stats.Completed)

	priorities := ui.NewTable("PRIORITY", "COUNT")
	for _, priority := range task.ValidPriorities() {
		priorities.AddRow(ui.StylePriority(string(priority)), strconv.Itoa(stats.ByPriority[priority]))
	}
	fmt.Fprintf(w, "\n%s", priorities)

	statuses := ui.NewTable("STATUS", "COUNT")
	for _, status := range task.ValidStatuses() {
		statuses.AddRow(ui.StyleStatus(string(status)), strconv.Itoa(stats.ByStatus[status]))
	}
	fmt.Fprintf(w, "\n%s", statuses)
}
