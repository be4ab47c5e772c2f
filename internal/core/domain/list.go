package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultListColor is applied when a list is created without one.
const DefaultListColor = "#3B82F6"

type List struct {
	ID        int
	UUID      uuid.UUID
	Name      string `validate:"required,min=1,max=100"`
	Color     string `validate:"hexcolor"`
	Position  int    `validate:"gte=0"`
	UserID    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *List) BelongsToUser(userID int) bool {
	return l.UserID == userID
}

// ListWithCount annotates a list with a live count of referencing tasks.
type ListWithCount struct {
	List
	TaskCount int
}
