package ui

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	statusStyles = map[string]lipgloss.Style{
		"TODO":        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"IN_PROGRESS": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"DONE":        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"CANCELLED":   lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}

	priorityStyles = map[string]lipgloss.Style{
		"LOW":    lipgloss.NewStyle().Faint(true),
		"HIGH":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"URGENT": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
)

// Header styles a table header cell.
func Header(value string) string {
	return render(headerStyle, value)
}

// HighlightID renders a task id.
func HighlightID(id int) string {
	return render(idStyle, strconv.Itoa(id))
}

// StyleStatus colors a status name. Unknown names are returned unchanged.
func StyleStatus(status string) string {
	style, ok := statusStyles[status]
	if !ok {
		return status
	}
	return render(style, status)
}

// StylePriority colors a priority name. Unknown names are returned unchanged.
func StylePriority(priority string) string {
	style, ok := priorityStyles[priority]
	if !ok {
		return priority
	}
	return render(style, priority)
}

func render(style lipgloss.Style, value string) string {
	if value == "" || !ansiEnabled() {
		return value
	}
	return style.Render(value)
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when stdout is not
// a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
