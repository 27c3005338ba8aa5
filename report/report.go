// Package report summarizes tasks into daily reports and CSV exports.
package report

import (
	"log/slog"
	"time"

	"github.com/amonks/tasks/internal/paths"
	"github.com/amonks/tasks/task"
	"github.com/go-git/go-billy/v5"
)

// DateLayout formats the report date.
const DateLayout = "02/01/2006"

// DailyReport summarizes the tasks created on one calendar day. Count maps
// only contain keys that occur.
type DailyReport struct {
	Date       string         `json:"date" yaml:"date"`
	TotalTasks int            `json:"total_tasks" yaml:"total_tasks"`
	Completed  int            `json:"completed_tasks" yaml:"completed_tasks"`
	ByStatus   map[string]int `json:"tasks_by_status" yaml:"tasks_by_status"`
	ByPriority map[string]int `json:"tasks_by_priority" yaml:"tasks_by_priority"`
	Tasks      []task.Task    `json:"-" yaml:"-"`
}

// Reporter builds reports and writes exports.
type Reporter struct {
	fs        billy.Filesystem
	hostPaths bool
	now       func() time.Time
	logger    *slog.Logger
}

// Options configures a Reporter. Zero fields take defaults.
type Options struct {
	// FS receives CSV exports. Defaults to the OS filesystem, where relative
	// paths resolve against the working directory.
	FS     billy.Filesystem
	Now    func() time.Time
	Logger *slog.Logger
}

// New returns a reporter.
func New(opts Options) *Reporter {
	r := &Reporter{fs: opts.FS, now: opts.Now, logger: opts.Logger}
	if r.fs == nil {
		r.fs = paths.HostFS()
		r.hostPaths = true
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Daily summarizes the tasks created on the calendar day of date, in date's
// location. A zero date means today. Tasks without a creation time are
// never included.
func (r *Reporter) Daily(tasks []task.Task, date time.Time) DailyReport {
	if date.IsZero() {
		date = r.now()
	}

	report := DailyReport{
		Date:       date.Format(DateLayout),
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}
	for _, t := range tasks {
		if !sameDay(t.CreatedAt, date) {
			continue
		}
		report.Tasks = append(report.Tasks, t)
		report.TotalTasks++
		report.ByStatus[string(t.Status)]++
		report.ByPriority[string(t.Priority)]++
		if t.Status == task.StatusDone {
			report.Completed++
		}
	}

	r.logger.Debug("built daily report", "date", report.Date, "tasks", report.TotalTasks)
	return report
}

func sameDay(t, date time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.In(date.Location()).Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
