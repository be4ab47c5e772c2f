package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Valid(t *testing.T) {
	t.Run("should accept the three known statuses", func(t *testing.T) {
		for _, status := range []TaskStatus{StatusTodo, StatusInProgress, StatusDone} {
			assert.True(t, status.Valid())
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		assert.False(t, TaskStatus("SHIPPED").Valid())
		assert.False(t, TaskStatus("todo").Valid())
		assert.False(t, TaskStatus("").Valid())
	})
}

func TestTaskPriority_Valid(t *testing.T) {
	t.Run("should accept the four known priorities", func(t *testing.T) {
		for _, priority := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
			assert.True(t, priority.Valid())
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		assert.False(t, TaskPriority("CRITICAL").Valid())
		assert.False(t, TaskPriority("").Valid())
	})
}

func TestParseDueDate(t *testing.T) {
	t.Run("should keep a date-only value as-is", func(t *testing.T) {
		due, err := ParseDueDate("2026-09-15")

		assert.NoError(t, err)
		assert.Equal(t, "2026-09-15", due)
	})

	t.Run("should reject other formats", func(t *testing.T) {
		for _, value := range []string{"15/09/2026", "2026-09-15T10:00:00Z", "tomorrow", ""} {
			_, err := ParseDueDate(value)

			assert.Error(t, err, value)
		}
	})
}

func TestTask_BelongsToUser(t *testing.T) {
	task := Task{UserID: 7}

	assert.True(t, task.BelongsToUser(7))
	assert.False(t, task.BelongsToUser(8))
}

func TestUser_Locked(t *testing.T) {
	t.Run("should stay unlocked below the threshold", func(t *testing.T) {
		user := User{FailedLoginAttempts: 2}

		assert.False(t, user.Locked(3))
	})

	t.Run("should lock at the threshold", func(t *testing.T) {
		user := User{FailedLoginAttempts: 3}

		assert.True(t, user.Locked(3))
	})
}
