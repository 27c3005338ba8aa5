package task

import (
	"errors"
	"fmt"

	"github.com/amonks/tasks/internal/validation"
)

var (
	// ErrInvalidArgument is returned for bad constructor or update input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyTitle is returned when a task is created without a title.
	// It wraps ErrInvalidArgument.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrInvalidArgument)

	// ErrNotFound is returned when an operation references an unknown task id.
	ErrNotFound = errors.New("task not found")

	// ErrMissingField is returned when a record lacks a required key.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownEnumValue is returned when a priority or status name is not
	// part of its enumeration.
	ErrUnknownEnumValue = errors.New("unknown enum value")

	// ErrCorruptData is returned when a task file is not a valid array of
	// task records.
	ErrCorruptData = errors.New("corrupt task file")

	// ErrStorage is returned when reading or writing the task file fails.
	ErrStorage = errors.New("task storage error")
)

// ParsePriority resolves a priority by its exact name.
func ParsePriority(name string) (Priority, error) {
	priority := Priority(name)
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: priority %q", ErrUnknownEnumValue, name)
	}
	return priority, nil
}

// ParseStatus resolves a status by its exact name.
func ParseStatus(name string) (Status, error) {
	status := Status(name)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: status %q", ErrUnknownEnumValue, name)
	}
	return status, nil
}

// ValidateTitle checks that a title is usable for a new task.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidatePriority checks that the priority is a member of the enumeration.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("%w: priority must be one of %s, got %q", ErrInvalidArgument, validation.FormatChoices(ValidPriorities()), priority)
	}
	return nil
}

func notFoundError(id int) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
