package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/amonks/tasks/internal/paths"
	"github.com/amonks/tasks/task"
	"github.com/go-git/go-billy/v5/util"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{
	"id",
	"title",
	"description",
	"priority",
	"status",
	"created_at",
	"completed_at",
	"project_id",
}

// ExportCSV writes tasks to path. An empty task list writes nothing and
// reports false.
func (r *Reporter) ExportCSV(tasks []task.Task, path string) (bool, error) {
	if len(tasks) == 0 {
		return false, nil
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tasks); err != nil {
		return false, err
	}

	target := path
	if r.hostPaths {
		abs, err := paths.HostPath(path)
		if err != nil {
			return false, fmt.Errorf("export %s: %w", path, err)
		}
		target = abs
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("export %s: %w", path, err)
		}
	}
	if err := util.WriteFile(r.fs, target, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("export %s: %w", path, err)
	}

	r.logger.Debug("exported tasks", "path", path, "tasks", len(tasks))
	return true, nil
}

// WriteCSV writes the header and one row per task. Timestamps use the same
// format as the task file; absent values are empty cells.
func WriteCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write(csvRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(t task.Task) []string {
	rec := t.Record()
	return []string{
		strconv.Itoa(rec.ID),
		rec.Title,
		rec.Description,
		rec.Priority,
		rec.Status,
		rec.CreatedAt,
		deref(rec.CompletedAt),
		deref(rec.ProjectID),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
