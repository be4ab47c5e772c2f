package port

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
)

// TaskFilter narrows a task listing. Nil fields are not applied; the
// applied ones combine with AND.
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	ListID   *int
	Page     int
	PageSize int
}

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.TaskWithList, error)
	GetByUUID(ctx context.Context, uid string) (domain.TaskWithList, error)
	List(ctx context.Context, userID int, filter TaskFilter) ([]domain.TaskWithList, int, error)
	CountByStatus(ctx context.Context, userID int) (domain.StatusCounters, error)
	// Update persists the task and, when entry is non-nil, the status
	// history row in the same transaction.
	Update(ctx context.Context, task domain.Task, entry *domain.StatusHistoryEntry) (domain.TaskWithList, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, userID int, keyword string) ([]domain.TaskWithList, error)
	HistoryByTaskID(ctx context.Context, taskID int) ([]domain.StatusHistoryEntry, error)
}

type TaskService interface {
	Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (domain.TaskWithList, error)
	List(ctx context.Context, userID int, query *request.ListTasksQuery) (*response.TaskListPage, error)
	Get(ctx context.Context, userID int, uid string) (domain.TaskWithList, error)
	Update(ctx context.Context, userID int, uid string, req *request.UpdateTaskRequest) (domain.TaskWithList, error)
	Delete(ctx context.Context, userID int, uid string) error
	Search(ctx context.Context, userID int, keyword string) ([]domain.TaskWithList, error)
	History(ctx context.Context, userID int, uid string) ([]domain.StatusHistoryEntry, error)
}
