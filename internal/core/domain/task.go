package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DueDateLayout is the date-only format tasks carry; due dates have no
// time-of-day component.
const DueDateLayout = "2006-01-02"

func ParseDueDate(value string) (string, error) {
	if _, err := time.Parse(DueDateLayout, value); err != nil {
		return "", fmt.Errorf("invalid due date %q: %w", value, err)
	}
	return value, nil
}

type Task struct {
	ID          int
	UUID        uuid.UUID
	Title       string `validate:"required,min=3,max=100"`
	Description string `validate:"max=2000"`
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *string
	CompletedAt *time.Time
	UserID      int
	ListID      *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BelongsToUser(userID int) bool {
	return t.UserID == userID
}

// ListSummary is the slice of a list embedded in task responses.
type ListSummary struct {
	UUID  uuid.UUID
	Name  string
	Color string
}

// TaskWithList joins a task with the summary of its list, when it has one.
type TaskWithList struct {
	Task
	List *ListSummary
}

// StatusCounters aggregates a user's whole task set, ignoring any filters.
type StatusCounters struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}
