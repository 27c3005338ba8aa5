package task

import "time"

// Task is a single unit of work.
type Task struct {
	// ID is unique within the Sequence that issued it (or verbatim from a record).
	ID int

	// Title is the short summary of the task. Required at creation.
	Title string

	// Description provides additional context about the task.
	Description string

	// Priority is the urgency classification.
	Priority Priority

	// Status is the current lifecycle stage.
	Status Status

	// CreatedAt is when the task was created. It never changes.
	CreatedAt time.Time

	// CompletedAt is when the task was last marked completed (nil if never).
	CompletedAt *time.Time

	// ProjectID is the project the task is assigned to (nil if unassigned).
	ProjectID *string
}

// NewTask builds a validated task with the given id.
// An empty priority means PriorityMedium.
func NewTask(id int, title, description string, priority Priority, now time.Time) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   now,
	}, nil
}

// MarkCompleted sets the status to done and stamps the completion time.
// Calling it again refreshes the timestamp.
func (t *Task) MarkCompleted(now time.Time) {
	t.Status = StatusDone
	t.CompletedAt = &now
}

// UpdatePriority replaces the priority after validating it.
func (t *Task) UpdatePriority(priority Priority) error {
	if err := ValidatePriority(priority); err != nil {
		return err
	}
	t.Priority = priority
	return nil
}

// AssignToProject sets the project. A nil projectID clears the assignment.
func (t *Task) AssignToProject(projectID *string) {
	if projectID == nil {
		t.ProjectID = nil
		return
	}
	value := *projectID
	t.ProjectID = &value
}

// HasProject reports whether the task is assigned to projectID.
func (t Task) HasProject(projectID string) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// clone returns a copy that shares no pointers with t.
func (t *Task) clone() Task {
	copied := *t
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		copied.CompletedAt = &completedAt
	}
	if t.ProjectID != nil {
		projectID := *t.ProjectID
		copied.ProjectID = &projectID
	}
	return copied
}
