package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/port"
)

type ListService struct {
	repo port.ListRepository
}

func NewListService(repo port.ListRepository) *ListService {
	return &ListService{repo: repo}
}

func (ls *ListService) Create(ctx context.Context, userID int, req *request.CreateListRequest) (domain.List, error) {
	now := time.Now()

	list := domain.List{
		UUID:      uuid.New(),
		Name:      req.Name,
		Color:     domain.DefaultListColor,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Color != nil && *req.Color != "" {
		list.Color = *req.Color
	}

	if req.Position != nil {
		list.Position = *req.Position
	}

	return ls.repo.Create(ctx, list)
}

func (ls *ListService) List(ctx context.Context, userID int) ([]domain.ListWithCount, error) {
	return ls.repo.ListByUser(ctx, userID)
}

func (ls *ListService) Update(ctx context.Context, userID int, uid string, req *request.UpdateListRequest) (domain.List, error) {
	list, err := ls.owned(ctx, userID, uid)

	if err != nil {
		return domain.List{}, err
	}

	if req.Name != nil {
		list.Name = *req.Name
	}

	if req.Color != nil && *req.Color != "" {
		list.Color = *req.Color
	}

	if req.Position != nil {
		list.Position = *req.Position
	}

	list.UpdatedAt = time.Now()

	return ls.repo.Update(ctx, list)
}

// Delete dissociates referencing tasks before removing the list; the
// tasks themselves survive with a null list.
func (ls *ListService) Delete(ctx context.Context, userID int, uid string) error {
	list, err := ls.owned(ctx, userID, uid)

	if err != nil {
		return err
	}

	return ls.repo.Delete(ctx, list.ID)
}

func (ls *ListService) owned(ctx context.Context, userID int, uid string) (domain.List, error) {
	list, err := ls.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.List{}, err
	}

	if !list.BelongsToUser(userID) {
		return domain.List{}, domain.ErrForbidden
	}

	return list, nil
}
