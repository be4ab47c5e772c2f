package domain

import "time"

// StatusHistoryEntry is an immutable record of one observed status
// transition on a task. Entries are written only when the status actually
// changes, never on task creation, and are removed with their task.
type StatusHistoryEntry struct {
	ID        int
	TaskID    int
	OldStatus TaskStatus
	NewStatus TaskStatus
	ChangedAt time.Time
}
