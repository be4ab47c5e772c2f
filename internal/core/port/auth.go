package port

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (domain.User, error)
	// Login verifies credentials and enforces the failed-attempt lockout.
	// It returns the authenticated user; token issuance stays at the
	// HTTP boundary.
	Login(ctx context.Context, req *request.LoginRequest) (domain.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
}
