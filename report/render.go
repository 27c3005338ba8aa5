package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/amonks/tasks/internal/markdown"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
	"gopkg.in/yaml.v3"
)

// document is the serialized form of a report, tasks included.
type document struct {
	DailyReport `yaml:",inline"`
	Tasks       []task.Record `json:"tasks" yaml:"tasks"`
}

func newDocument(report DailyReport) document {
	doc := document{DailyReport: report, Tasks: make([]task.Record, 0, len(report.Tasks))}
	for _, t := range report.Tasks {
		doc.Tasks = append(doc.Tasks, t.Record())
	}
	return doc
}

// RenderJSON encodes the report, tasks included, as indented JSON.
func RenderJSON(report DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(report)); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderYAML encodes the report, tasks included, as YAML.
func RenderYAML(report DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(report)); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderText renders the report as a summary followed by a task table.
func RenderText(report DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report for %s\n\n", report.Date)
	fmt.Fprintf(&b, "Total tasks: %d\n", report.TotalTasks)
	fmt.Fprintf(&b, "Completed:   %d\n", report.Completed)

	if report.TotalTasks == 0 {
		return b.String()
	}

	b.WriteString("\n")
	counts := ui.NewTable("STATUS", "COUNT")
	for _, name := range orderedKeys(report.ByStatus, statusNames()) {
		counts.AddRow(ui.StyleStatus(name), strconv.Itoa(report.ByStatus[name]))
	}
	b.WriteString(counts.String())

	b.WriteString("\n")
	counts = ui.NewTable("PRIORITY", "COUNT")
	for _, name := range orderedKeys(report.ByPriority, priorityNames()) {
		counts.AddRow(ui.StylePriority(name), strconv.Itoa(report.ByPriority[name]))
	}
	b.WriteString(counts.String())

	b.WriteString("\n")
	tasks := ui.NewTable("ID", "TITLE", "PRIORITY", "STATUS")
	for _, t := range report.Tasks {
		tasks.AddRow(ui.HighlightID(t.ID), t.Title, ui.StylePriority(string(t.Priority)), ui.StyleStatus(string(t.Status)))
	}
	b.WriteString(tasks.String())
	return b.String()
}

// Markdown returns the report as markdown source.
func Markdown(report DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily report for %s\n\n", report.Date)
	fmt.Fprintf(&b, "- **Total tasks:** %d\n", report.TotalTasks)
	fmt.Fprintf(&b, "- **Completed:** %d\n", report.Completed)

	if report.TotalTasks == 0 {
		return b.String()
	}

	b.WriteString("\n## By status\n\n| Status | Count |\n| --- | --- |\n")
	for _, name := range orderedKeys(report.ByStatus, statusNames()) {
		fmt.Fprintf(&b, "| %s | %d |\n", name, report.ByStatus[name])
	}

	b.WriteString("\n## By priority\n\n| Priority | Count |\n| --- | --- |\n")
	for _, name := range orderedKeys(report.ByPriority, priorityNames()) {
		fmt.Fprintf(&b, "| %s | %d |\n", name, report.ByPriority[name])
	}

	b.WriteString("\n## Tasks\n\n")
	for _, t := range report.Tasks {
		mark := " "
		if t.Status == task.StatusDone {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] #%d %s (%s)\n", mark, t.ID, markdownEscape(t.Title), t.Priority)
	}
	return b.String()
}

// RenderMarkdown renders the report's markdown for a terminal of width columns.
func RenderMarkdown(report DailyReport, width int) string {
	return markdown.Render(width, Markdown(report))
}

func markdownEscape(value string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`).Replace(value)
}

// orderedKeys returns the keys of counts, known names first in their
// declared order, then any others sorted.
func orderedKeys(counts map[string]int, known []string) []string {
	keys := make([]string, 0, len(counts))
	for _, name := range known {
		if _, ok := counts[name]; ok {
			keys = append(keys, name)
		}
	}
	var extra []string
	for name := range counts {
		if !slices.Contains(known, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func statusNames() []string {
	var names []string
	for _, status := range task.ValidStatuses() {
		names = append(names, string(status))
	}
	return names
}

func priorityNames() []string {
	var names []string
	for _, priority := range task.ValidPriorities() {
		names = append(names, string(priority))
	}
	return names
}
