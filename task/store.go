package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/amonks/tasks/internal/paths"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

func (m *Manager) resolvePath(path string) string {
	if path == "" {
		return m.storageFile
	}
	return path
}

// fsPath maps path onto m.fs.
func (m *Manager) fsPath(path string) (string, error) {
	if !m.hostPaths {
		return path, nil
	}
	return paths.HostPath(path)
}

// Save writes every task, in insertion order, as a JSON array of records to
// path (the storage file if empty), replacing the file's previous content.
func (m *Manager) Save(path string) error {
	path = m.resolvePath(path)

	records := make([]Record, 0, len(m.order))
	m.each(func(t *Task) {
		records = append(records, t.Record())
	})

	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("%w: encode tasks: %w", ErrStorage, err)
	}

	target, err := m.fsPath(path)
	if err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrStorage, path, err)
	}
	if err := writeFile(m.fs, target, data); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrStorage, path, err)
	}

	m.logger.Debug("saved tasks", "path", path, "count", len(records))
	return nil
}

// Load replaces the whole collection with the tasks stored at path (the
// storage file if empty). Unsaved in-memory changes are discarded.
//
// A missing file is not an error: Load returns false and leaves the
// collection untouched.
func (m *Manager) Load(path string) (bool, error) {
	path = m.resolvePath(path)

	source, err := m.fsPath(path)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrStorage, path, err)
	}
	data, err := util.ReadFile(m.fs, source)
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Debug("task file not found", "path", path)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrStorage, path, err)
	}

	loaded, err := decodeTasks(data)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}

	m.tasks = make(map[int]*Task, len(loaded))
	m.order = make([]int, 0, len(loaded))
	for _, t := range loaded {
		m.insert(t)
		m.ids.Observe(t.ID)
	}

	m.logger.Debug("loaded tasks", "path", path, "count", len(m.order))
	return true, nil
}

func encodeRecords(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeTasks(data []byte) ([]*Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of tasks", ErrCorruptData)
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	tasks := make([]*Task, 0, len(records))
	for i, record := range records {
		t, err := FromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrCorruptData, i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// writeFile writes data to a temp file next to path and renames it into place.
func writeFile(fs billy.Filesystem, path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := fs.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		fs.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
