package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/port"
	"taskhub/internal/core/util"
)

// DefaultLockThreshold is the number of consecutive failed logins after
// which the account stops accepting credentials, correct or not.
const DefaultLockThreshold = 3

type AuthService struct {
	repo          port.UserRepository
	lockThreshold int
}

func NewAuthService(repo port.UserRepository, lockThreshold int) *AuthService {
	if lockThreshold <= 0 {
		lockThreshold = DefaultLockThreshold
	}

	return &AuthService{repo: repo, lockThreshold: lockThreshold}
}

func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (domain.User, error) {
	_, err := as.repo.GetByEmail(ctx, req.Email)

	if err == nil {
		return domain.User{}, domain.ErrEmailTaken
	}

	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		slog.Error("Auth#Register", "generate_encrypt", err)
		return domain.User{}, err
	}

	now := time.Now()

	user := domain.User{
		UUID:              uuid.New(),
		Name:              req.DisplayName,
		Email:             req.Email,
		EncryptedPassword: encrypted,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return as.repo.Create(ctx, user)
}

// Login never reveals whether the email exists or the password was wrong;
// both fail with ErrInvalidCredentials. Only the locked state is distinct.
func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (domain.User, error) {
	user, err := as.repo.GetByEmail(ctx, req.Email)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}

		return domain.User{}, err
	}

	if user.Locked(as.lockThreshold) {
		return domain.User{}, domain.ErrAccountLocked
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		attempts := user.FailedLoginAttempts + 1

		if err := as.repo.SetFailedLoginAttempts(ctx, user.ID, attempts); err != nil {
			return domain.User{}, err
		}

		if attempts >= as.lockThreshold {
			return domain.User{}, domain.ErrAccountLocked
		}

		return domain.User{}, domain.ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 {
		if err := as.repo.SetFailedLoginAttempts(ctx, user.ID, 0); err != nil {
			return domain.User{}, err
		}

		user.FailedLoginAttempts = 0
	}

	return user, nil
}

// ChangePassword replaces the stored hash. Sessions issued before the
// change stay valid until their natural expiry.
func (as *AuthService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := as.repo.GetByID(ctx, userID)

	if err != nil {
		return err
	}

	if err := util.ComparePassword(oldPassword, user.EncryptedPassword); err != nil {
		return domain.ErrWrongPassword
	}

	encrypted, err := util.GenerateEncrypt(newPassword)

	if err != nil {
		return err
	}

	return as.repo.UpdatePassword(ctx, user.ID, encrypted)
}
