package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const taskDetailLineWidth = 80

// printTaskDetail prints detailed information about a task.
func printTaskDetail(w io.Writer, t task.Task) {
	project := "-"
	if t.ProjectID != nil {
		project = *t.ProjectID
	}

	fmt.Fprintf(w, "ID:        %s\n", ui.HighlightID(t.ID))
	fmt.Fprintf(w, "Title:     %s\n", t.Title)
	fmt.Fprintf(w, "Priority:  %s\n", ui.StylePriority(string(t.Priority)))
	fmt.Fprintf(w, "Status:    %s\n", ui.StyleStatus(string(t.Status)))
	fmt.Fprintf(w, "Project:   %s\n", project)
	fmt.Fprintf(w, "Created:   %s\n", ui.FormatTimestamp(t.CreatedAt))
	if t.CompletedAt != nil {
		fmt.Fprintf(w, "Completed: %s\n", ui.FormatTimestamp(*t.CompletedAt))
	}

	if strings.TrimSpace(t.Description) != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", formatTaskDescription(t.Description))
	}
}

func formatTaskDescription(value string) string {
	const margin = 2
	wrapped := wordwrap.String(strings.TrimSpace(value), taskDetailLineWidth-margin)
	return indent.String(wrapped, margin)
}
