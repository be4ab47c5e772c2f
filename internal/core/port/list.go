package port

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
)

type ListRepository interface {
	Create(ctx context.Context, list domain.List) (domain.List, error)
	GetByID(ctx context.Context, id int) (domain.List, error)
	GetByUUID(ctx context.Context, uid string) (domain.List, error)
	ListByUser(ctx context.Context, userID int) ([]domain.ListWithCount, error)
	Update(ctx context.Context, list domain.List) (domain.List, error)
	// Delete removes the list after setting list_id = NULL on every task
	// referencing it, both inside one transaction.
	Delete(ctx context.Context, id int) error
}

type ListService interface {
	Create(ctx context.Context, userID int, req *request.CreateListRequest) (domain.List, error)
	List(ctx context.Context, userID int) ([]domain.ListWithCount, error)
	Update(ctx context.Context, userID int, uid string, req *request.UpdateListRequest) (domain.List, error)
	Delete(ctx context.Context, userID int, uid string) error
}
