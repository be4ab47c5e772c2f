package service

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (us *UserService) Get(ctx context.Context, userID int) (domain.User, error) {
	return us.repo.GetByID(ctx, userID)
}

func (us *UserService) UpdateDisplayName(ctx context.Context, userID int, name string) (domain.User, error) {
	user, err := us.repo.GetByID(ctx, userID)

	if err != nil {
		return domain.User{}, err
	}

	if err := us.repo.UpdateName(ctx, user.ID, name); err != nil {
		return domain.User{}, err
	}

	user.Name = name

	return user, nil
}
