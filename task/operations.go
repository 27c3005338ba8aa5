package task

import (
	"fmt"
	"slices"
)

// AddOptions configures a new task.
type AddOptions struct {
	// Description provides additional context.
	Description string

	// Priority defaults to PriorityMedium when empty.
	Priority Priority
}

// Add creates a task, stores it and returns its id.
func (m *Manager) Add(title string, opts AddOptions) (int, error) {
	if err := ValidateTitle(title); err != nil {
		return 0, err
	}
	if opts.Priority != "" {
		if err := ValidatePriority(opts.Priority); err != nil {
			return 0, err
		}
	}

	t, err := NewTask(m.ids.Next(), title, opts.Description, opts.Priority, m.now())
	if err != nil {
		return 0, err
	}

	m.insert(t)
	m.logger.Debug("added task", "id", t.ID, "priority", t.Priority)
	return t.ID, nil
}

func (m *Manager) insert(t *Task) {
	if _, exists := m.tasks[t.ID]; !exists {
		m.order = append(m.order, t.ID)
	}
	m.tasks[t.ID] = t
}

// Get returns a copy of the task with the given id.
func (m *Manager) Get(id int) (Task, bool) {
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// ByStatus returns the tasks with the given status.
func (m *Manager) ByStatus(status Status) []Task {
	return m.Filter(Filter{Status: &status})
}

// ByPriority returns the tasks with the given priority.
func (m *Manager) ByPriority(priority Priority) []Task {
	return m.Filter(Filter{Priority: &priority})
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
//
// Fields are applied in the order title, description, priority, status and
// each takes effect immediately: when PriorityName fails to resolve, the
// title and description changes have already been applied.
type UpdateOptions struct {
	// Title is assigned as given; an empty title is allowed here.
	Title *string

	// Description is assigned as given.
	Description *string

	// Priority is assigned as given, without validation.
	Priority *Priority

	// PriorityName is resolved with ParsePriority. It takes precedence over Priority.
	PriorityName *string

	// Status is stored verbatim, without validation.
	Status *Status
}

// Update changes the selected fields of a task.
func (m *Manager) Update(id int, opts UpdateOptions) error {
	t, ok := m.tasks[id]
	if !ok {
		return notFoundError(id)
	}

	if opts.Title != nil {
		t.Title = *opts.Title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.PriorityName != nil {
		priority, err := ParsePriority(*opts.PriorityName)
		if err != nil {
			return fmt.Errorf("update task %d: %w", id, err)
		}
		t.Priority = priority
	} else if opts.Priority != nil {
		t.Priority = *opts.Priority
	}
	if opts.Status != nil {
		t.Status = *opts.Status
	}

	m.logger.Debug("updated task", "id", id)
	return nil
}

// Complete marks a task as done and stamps its completion time.
func (m *Manager) Complete(id int) error {
	t, ok := m.tasks[id]
	if !ok {
		return notFoundError(id)
	}
	t.MarkCompleted(m.now())
	m.logger.Debug("completed task", "id", id)
	return nil
}

// AssignProject assigns a task to a project. A nil projectID clears it.
func (m *Manager) AssignProject(id int, projectID *string) error {
	t, ok := m.tasks[id]
	if !ok {
		return notFoundError(id)
	}
	t.AssignToProject(projectID)
	return nil
}

// Filter configures which tasks to return. Nil criteria match every task.
type Filter struct {
	// Status filters by exact status match.
	Status *Status

	// Priority filters by exact priority match.
	Priority *Priority

	// ProjectID filters by project. Unassigned tasks never match.
	ProjectID *string
}

func (f Filter) matches(t *Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.ProjectID != nil && !t.HasProject(*f.ProjectID) {
		return false
	}
	return true
}

// Filter returns copies of the tasks matching every criterion in filter.
func (m *Manager) Filter(filter Filter) []Task {
	var result []Task
	m.each(func(t *Task) {
		if filter.matches(t) {
			result = append(result, t.clone())
		}
	})
	return result
}

// Delete removes a task.
func (m *Manager) Delete(id int) error {
	if _, ok := m.tasks[id]; !ok {
		return notFoundError(id)
	}
	delete(m.tasks, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	m.logger.Debug("deleted task", "id", id)
	return nil
}

// Statistics summarizes the collection.
type Statistics struct {
	Total      int              `json:"total" yaml:"total"`
	Completed  int              `json:"completed" yaml:"completed"`
	ByPriority map[Priority]int `json:"by_priority" yaml:"by_priority"`
	ByStatus   map[Status]int   `json:"by_status" yaml:"by_status"`
}

// Statistics counts tasks overall, completed, per priority and per status.
// Every enumeration member is present in the maps, zero when unused.
// Values outside the enumerations only count toward Total.
func (m *Manager) Statistics() Statistics {
	stats := Statistics{
		ByPriority: make(map[Priority]int, len(ValidPriorities())),
		ByStatus:   make(map[Status]int, len(ValidStatuses())),
	}
	for _, priority := range ValidPriorities() {
		stats.ByPriority[priority] = 0
	}
	for _, status := range ValidStatuses() {
		stats.ByStatus[status] = 0
	}

	m.each(func(t *Task) {
		stats.Total++
		if t.Priority.IsValid() {
			stats.ByPriority[t.Priority]++
		}
		if t.Status.IsValid() {
			stats.ByStatus[t.Status]++
		}
		if t.Status == StatusDone {
			stats.Completed++
		}
	})

	return stats
}
