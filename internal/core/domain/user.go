package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  int
	UUID                uuid.UUID
	Name                string `validate:"required,min=1,max=100"`
	Email               string `validate:"required,email,max=255"`
	EncryptedPassword   string `validate:"required"`
	IsActive            bool
	FailedLoginAttempts int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Locked reports whether the failed-login counter has reached the
// lockout threshold. The lock holds until the counter is reset.
func (u *User) Locked(threshold int) bool {
	return u.FailedLoginAttempts >= threshold
}
