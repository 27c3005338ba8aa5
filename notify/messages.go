package notify

import (
	"fmt"
	"strings"
	"time"
)

// DueDateLayout formats due dates in reminder bodies.
const DueDateLayout = "02/01/2006 15:04"

// CompletionSubject is the subject of completion notices.
const CompletionSubject = "✅ Task completed!"

// ReminderSubject returns the subject of a reminder for title.
func ReminderSubject(title string) string {
	return "🔔 Reminder: " + title
}

// ReminderBody returns the body of a reminder for title.
func ReminderBody(title string, due time.Time) string {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "This is a reminder for the task: %s\n", title)
	if !due.IsZero() {
		fmt.Fprintf(&b, "Due date: %s\n", due.Format(DueDateLayout))
	}
	b.WriteString("\nBest regards,\nYour task manager")
	return b.String()
}

// CompletionBody returns the body of a completion notice for title.
func CompletionBody(title string) string {
	return fmt.Sprintf("Hello,\n\nCongratulations! You have completed the task: %s\n\nBest regards,\nYour task manager", title)
}
