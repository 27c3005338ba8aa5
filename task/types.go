// Package task implements a small task tracker: a Task entity with a
// priority and a lifecycle status, and a Manager that keeps tasks in memory
// and persists them to a JSON file.
//
// The public API mirrors the CLI commands:
//   - Add, Update, Complete, AssignProject, Delete for the task lifecycle
//   - Get, ByStatus, ByPriority, Filter, Statistics for querying
//   - Save, Load for persistence
package task

// Priority classifies how urgent a task is. The value is the symbolic name.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM" // default
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ValidPriorities returns all priority values in declaration order.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Status is the lifecycle stage of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "TODO"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "IN_PROGRESS"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "DONE"

	// StatusCancelled indicates the task was abandoned.
	StatusCancelled Status = "CANCELLED"
)

// ValidStatuses returns all status values in declaration order.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone, StatusCancelled}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority Priority) *Priority {
	return &priority
}

// StatusPtr returns a pointer to the provided status.
func StatusPtr(status Status) *Status {
	return &status
}

// StringPtr returns a pointer to the provided string.
func StringPtr(value string) *string {
	return &value
}

// DefaultStorageFile is the file a Manager persists to when none is given.
const DefaultStorageFile = "tasks.json"
