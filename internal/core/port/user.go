package port

import (
	"context"

	"taskhub/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdatePassword(ctx context.Context, id int, encrypted string) error
	SetFailedLoginAttempts(ctx context.Context, id int, attempts int) error
}

type UserService interface {
	Get(ctx context.Context, userID int) (domain.User, error)
	UpdateDisplayName(ctx context.Context, userID int, name string) (domain.User, error)
}
