package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/validation"
	"github.com/amonks/tasks/task"
)

// TaskData is rendered into the editable document.
type TaskData struct {
	ID          int
	Title       string
	Priority    string
	Status      string
	Project     string
	Description string
}

// DataFromTask returns the editable fields of t.
func DataFromTask(t task.Task) TaskData {
	data := TaskData{
		ID:          t.ID,
		Title:       t.Title,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Description: t.Description,
	}
	if t.ProjectID != nil {
		data.Project = *t.ProjectID
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Funcs(template.FuncMap{
	"choices": func(kind string) string {
		if kind == "status" {
			return validation.FormatChoices(task.ValidStatuses())
		}
		return validation.FormatChoices(task.ValidPriorities())
	},
	"toml": tomlString,
}).Parse(`# Task {{ .ID }}. Everything below --- is the description.
title = {{ toml .Title }}
priority = {{ toml .Priority }} # {{ choices "priority" }}
status = {{ toml .Status }} # {{ choices "status" }}
project = {{ toml .Project }} # empty for none
---
{{ .Description }}
`))

// tomlString quotes value as a TOML basic string.
func tomlString(value string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{"v": value}); err != nil {
		return "", err
	}
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return strings.TrimPrefix(quoted, "v = "), nil
}

// RenderTOML renders the editable document for data.
func RenderTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask is the validated result of an edit.
type ParsedTask struct {
	Title       string `toml:"title"`
	Priority    string `toml:"priority"`
	Status      string `toml:"status"`
	Project     string `toml:"project"`
	Description string `toml:"-"`
}

// ParseTOML parses and validates an edited document.
func ParseTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = internalstrings.TrimTrailingNewlines(strings.TrimLeft(body, "\n"))
	parsed.Priority = internalstrings.NormalizeEnumName(parsed.Priority)
	parsed.Status = internalstrings.NormalizeEnumName(parsed.Status)
	parsed.Project = strings.TrimSpace(parsed.Project)

	if err := task.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if _, err := task.ParsePriority(parsed.Priority); err != nil {
		return nil, err
	}
	if _, err := task.ParseStatus(parsed.Status); err != nil {
		return nil, err
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// UpdateOptions converts the edit into a task update.
func (p *ParsedTask) UpdateOptions() task.UpdateOptions {
	status := task.Status(p.Status)
	return task.UpdateOptions{
		Title:        &p.Title,
		Description:  &p.Description,
		PriorityName: &p.Priority,
		Status:       &status,
	}
}

// ProjectID returns the edited project, or nil when it was cleared.
func (p *ParsedTask) ProjectID() *string {
	if p.Project == "" {
		return nil
	}
	project := p.Project
	return &project
}

// EditTask opens the editor on t and returns the parsed result.
func EditTask(t task.Task) (*ParsedTask, error) {
	content, err := RenderTOML(DataFromTask(t))
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tasks-edit-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	return ParseTOML(string(edited))
}
