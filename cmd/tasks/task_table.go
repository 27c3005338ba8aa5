package main

import (
	"time"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

func formatTaskTable(tasks []task.Task, now time.Time) string {
	table := ui.NewTable("ID", "PRIORITY", "STATUS", "PROJECT", "AGE", "TITLE")
	for _, t := range tasks {
		project := "-"
		if t.ProjectID != nil {
			project = *t.ProjectID
		}
		table.AddRow(
			ui.HighlightID(t.ID),
			ui.StylePriority(string(t.Priority)),
			ui.StyleStatus(string(t.Status)),
			project,
			ui.FormatTimeAgo(t.CreatedAt, now),
			t.Title,
		)
	}
	return table.String()
}
