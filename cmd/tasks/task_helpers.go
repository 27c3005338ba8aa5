package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/task"
	"github.com/spf13/cobra"
)

// parseTaskID accepts "7" or "#7".
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getTasks resolves every id or fails on the first unknown one.
func getTasks(m *task.Manager, ids []int) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := m.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", task.ErrNotFound, id)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func parsePriority(value string) (task.Priority, error) {
	return task.ParsePriority(internalstrings.NormalizeEnumName(value))
}

func parseStatus(value string) (task.Status, error) {
	return task.ParseStatus(internalstrings.NormalizeEnumName(value))
}

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDue reads a due time in local time. Date-only values mean 09:00.
func parseDue(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dueLayouts {
		due, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			due = time.Date(due.Year(), due.Month(), due.Day(), 9, 0, 0, 0, time.Local)
		}
		return due, nil
	}
	return time.Time{}, fmt.Errorf("invalid due time %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input))), nil
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func records(tasks []task.Task) []task.Record {
	out := make([]task.Record, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Record())
	}
	return out
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
