package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amonks/tasks/internal/config"
	"github.com/amonks/tasks/internal/markdown"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the tasks created on one day",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var (
	reportDate   string
	reportFormat = formatFlag("text")
)

// formatFlag is a pflag.Value restricted to the report formats.
type formatFlag string

var _ pflag.Value = (*formatFlag)(nil)

var reportFormats = []string{"text", "markdown", "yaml", "json"}

func (f *formatFlag) String() string { return string(*f) }

func (f *formatFlag) Type() string { return "format" }

func (f *formatFlag) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if !slices.Contains(reportFormats, value) {
		return fmt.Errorf("unknown format %q (use %s)", value, strings.Join(reportFormats, ", "))
	}
	*f = formatFlag(value)
	return nil
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export all tasks to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

const reportDateLayout = "2006-01-02"

func init() {
	rootCmd.AddCommand(reportCmd, exportCmd)

	reportCmd.Flags().StringVar(&reportDate, "date", "", "Day to report on, as YYYY-MM-DD (default: today)")
	reportCmd.Flags().Var(&reportFormat, "format", "Output format (text, markdown, yaml, json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	var date time.Time
	if reportDate != "" {
		parsed, err := time.ParseInLocation(reportDateLayout, reportDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q (use YYYY-MM-DD)", reportDate)
		}
		date = parsed
	}
	m, cfg, err := openManager(cmd)
	if err != nil {
		return err
	}

	daily := newReporter().Daily(m.Tasks(), date)
	out := cmd.OutOrStdout()

	switch reportFormat {
	case "markdown":
		fmt.Fprintln(out, report.RenderMarkdown(daily, reportWidth(cfg)))
	case "yaml":
		data, err := report.RenderYAML(daily)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json":
		data, err := report.RenderJSON(daily)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		fmt.Fprint(out, report.RenderText(daily))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	tasks := m.Tasks()
	written, err := newReporter().ExportCSV(tasks, args[0])
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks to export.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), args[0])
	return nil
}

func newReporter() *report.Reporter {
	return report.New(report.Options{Logger: logger})
}

func reportWidth(cfg *config.Config) int {
	if cfg.Report.Width > 0 {
		return cfg.Report.Width
	}
	return ui.TerminalWidth(markdown.DefaultWidth)
}
