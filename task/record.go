package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is the flat, serializable form of a Task.
type Record struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Priority    string  `json:"priority" yaml:"priority"`
	Status      string  `json:"status" yaml:"status"`
	CreatedAt   string  `json:"created_at" yaml:"created_at"`
	CompletedAt *string `json:"completed_at" yaml:"completed_at"`
	ProjectID   *string `json:"project_id" yaml:"project_id"`

	// missing lists required keys absent from the decoded JSON object.
	missing []string
}

var requiredRecordKeys = []string{"id", "title", "priority", "status"}

// UnmarshalJSON decodes a record and remembers which required keys were absent
// so FromRecord can report them.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	type plainRecord Record
	var decoded plainRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Record(decoded)

	r.missing = nil
	for _, key := range requiredRecordKeys {
		raw, ok := fields[key]
		if !ok || strings.TrimSpace(string(raw)) == "null" {
			r.missing = append(r.missing, key)
		}
	}
	return nil
}

// Record returns the flat representation of the task.
// Enumerations are rendered by name and timestamps as RFC 3339.
func (t Task) Record() Record {
	record := Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   formatTimestamp(t.CreatedAt),
	}
	if t.CompletedAt != nil {
		completedAt := formatTimestamp(*t.CompletedAt)
		record.CompletedAt = &completedAt
	}
	if t.ProjectID != nil {
		projectID := *t.ProjectID
		record.ProjectID = &projectID
	}
	return record
}

// FromRecord rebuilds a task from its flat representation.
// The record's id is used verbatim; no Sequence is consulted.
func FromRecord(r Record) (*Task, error) {
	if len(r.missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(r.missing, ", "))
	}

	priority, err := ParsePriority(r.Priority)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}

	t := &Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt,
	}

	if r.CompletedAt != nil {
		completedAt, err := parseTimestamp(*r.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("completed_at: %w", err)
		}
		if !completedAt.IsZero() {
			t.CompletedAt = &completedAt
		}
	}
	if r.ProjectID != nil {
		projectID := *r.ProjectID
		t.ProjectID = &projectID
	}

	return t, nil
}

// naiveTimestampLayouts are accepted for files written by tools that emit
// ISO-8601 without a zone. Fractional seconds are accepted by time.Parse.
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, nil
	}
	for _, layout := range naiveTimestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q is not ISO-8601", ErrInvalidArgument, value)
}
