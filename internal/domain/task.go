package domain

import "time"

// Task is a piece of work assigned to one or more users across stores.
// Values are immutable by replacement: to mutate, build a new value and save.
type Task struct {
	ID     string
	Title  string
	Detail string
	Status Status

	DueDate     *time.Time
	IsGroupTask bool

	// Opaque user references, resolved outside this core.
	AssignedTo     []string
	CompletedBy    []string
	AcknowledgedBy []string

	// Applicability.
	Stores      []string
	Departments []string

	CreatedBy string
	CreatedAt time.Time

	RequiresAck bool
}

// AppliesTo reports whether the task targets the given store code.
func (t *Task) AppliesTo(storeCode string) bool {
	for _, s := range t.Stores {
		if s == storeCode {
			return true
		}
	}
	return false
}

// CompletedByUser reports whether the given user reference has completed the task.
func (t *Task) CompletedByUser(userRef string) bool {
	for _, u := range t.CompletedBy {
		if u == userRef {
			return true
		}
	}
	return false
}
