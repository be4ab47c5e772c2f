package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
	"taskhub/internal/core/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type TaskService struct {
	tasks port.TaskRepository
	lists port.ListRepository
}

func NewTaskService(tasks port.TaskRepository, lists port.ListRepository) *TaskService {
	return &TaskService{tasks: tasks, lists: lists}
}

func (ts *TaskService) Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (domain.TaskWithList, error) {
	now := time.Now()

	// Status is forced to TODO on creation regardless of input.
	task := domain.Task{
		UUID:        uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityMedium,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := domain.ParseDueDate(*req.DueDate)

		if err != nil {
			return domain.TaskWithList{}, domain.ErrInvalidInput
		}

		task.DueDate = &due
	}

	if req.ListID != nil && *req.ListID != "" {
		list, err := ts.ownedList(ctx, userID, *req.ListID)

		if err != nil {
			return domain.TaskWithList{}, err
		}

		task.ListID = &list.ID
	}

	created, err := ts.tasks.Create(ctx, task)

	if err != nil {
		slog.Error("Task#Create", "error", err, "title", task.Title)
		return domain.TaskWithList{}, err
	}

	return created, nil
}

func (ts *TaskService) List(ctx context.Context, userID int, query *request.ListTasksQuery) (*response.TaskListPage, error) {
	filter, err := ts.buildFilter(ctx, userID, query)

	if err != nil {
		return nil, err
	}

	tasks, total, err := ts.tasks.List(ctx, userID, filter)

	if err != nil {
		return nil, err
	}

	// Counters always cover the full owned set, not the filtered one.
	counters, err := ts.tasks.CountByStatus(ctx, userID)

	if err != nil {
		return nil, err
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize

	page := response.TaskListPage{
		Tasks: response.TasksFromDomain(tasks),
		Counters: response.StatusCountersResponse{
			Total:      counters.Total,
			Todo:       counters.Todo,
			InProgress: counters.InProgress,
			Done:       counters.Done,
		},
		Pagination: response.PaginationResponse{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	return &page, nil
}

func (ts *TaskService) Get(ctx context.Context, userID int, uid string) (domain.TaskWithList, error) {
	// Non-existence takes precedence over ownership mismatch.
	task, err := ts.tasks.GetByUUID(ctx, uid)

	if err != nil {
		return domain.TaskWithList{}, err
	}

	if !task.BelongsToUser(userID) {
		return domain.TaskWithList{}, domain.ErrForbidden
	}

	return task, nil
}

func (ts *TaskService) Update(ctx context.Context, userID int, uid string, req *request.UpdateTaskRequest) (domain.TaskWithList, error) {
	existing, err := ts.Get(ctx, userID, uid)

	if err != nil {
		return domain.TaskWithList{}, err
	}

	task := existing.Task
	now := time.Now()

	if req.Title != nil {
		task.Title = *req.Title
	}

	if req.Description != nil {
		task.Description = *req.Description
	}

	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}

	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := domain.ParseDueDate(*req.DueDate)

			if err != nil {
				return domain.TaskWithList{}, domain.ErrInvalidInput
			}

			task.DueDate = &due
		}
	}

	if req.ListID != nil {
		if *req.ListID == "" {
			task.ListID = nil
		} else {
			list, err := ts.ownedList(ctx, userID, *req.ListID)

			if err != nil {
				return domain.TaskWithList{}, err
			}

			task.ListID = &list.ID
		}
	}

	var entry *domain.StatusHistoryEntry

	if req.Status != nil {
		next := domain.TaskStatus(*req.Status)

		if !next.Valid() {
			return domain.TaskWithList{}, domain.ErrInvalidInput
		}

		// A no-op status leaves no history entry behind.
		if next != task.Status {
			entry = &domain.StatusHistoryEntry{
				TaskID:    task.ID,
				OldStatus: task.Status,
				NewStatus: next,
				ChangedAt: now,
			}

			if next == domain.StatusDone {
				task.CompletedAt = &now
			} else if task.Status == domain.StatusDone {
				task.CompletedAt = nil
			}

			task.Status = next
		}
	}

	task.UpdatedAt = now

	return ts.tasks.Update(ctx, task, entry)
}

func (ts *TaskService) Delete(ctx context.Context, userID int, uid string) error {
	task, err := ts.Get(ctx, userID, uid)

	if err != nil {
		return err
	}

	return ts.tasks.Delete(ctx, task.ID)
}

// Search is intentionally unpaginated and carries no status counters;
// its response shape differs from List on purpose.
func (ts *TaskService) Search(ctx context.Context, userID int, keyword string) ([]domain.TaskWithList, error) {
	keyword = strings.TrimSpace(keyword)

	if keyword == "" {
		return nil, domain.ErrInvalidInput
	}

	return ts.tasks.Search(ctx, userID, keyword)
}

func (ts *TaskService) History(ctx context.Context, userID int, uid string) ([]domain.StatusHistoryEntry, error) {
	task, err := ts.Get(ctx, userID, uid)

	if err != nil {
		return nil, err
	}

	return ts.tasks.HistoryByTaskID(ctx, task.ID)
}

func (ts *TaskService) buildFilter(ctx context.Context, userID int, query *request.ListTasksQuery) (port.TaskFilter, error) {
	filter := port.TaskFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	if query.Status != "" {
		status := domain.TaskStatus(query.Status)

		if !status.Valid() {
			return port.TaskFilter{}, domain.ErrInvalidInput
		}

		filter.Status = &status
	}

	if query.Priority != "" {
		priority := domain.TaskPriority(query.Priority)

		if !priority.Valid() {
			return port.TaskFilter{}, domain.ErrInvalidInput
		}

		filter.Priority = &priority
	}

	if query.ListID != "" {
		list, err := ts.lists.GetByUUID(ctx, query.ListID)

		if err != nil || list.UserID != userID {
			// Filtering by a list the requester does not own matches nothing.
			missing := -1
			filter.ListID = &missing
		} else {
			filter.ListID = &list.ID
		}
	}

	return filter, nil
}

func (ts *TaskService) ownedList(ctx context.Context, userID int, uid string) (domain.List, error) {
	list, err := ts.lists.GetByUUID(ctx, uid)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.List{}, domain.ErrListForbidden
		}

		return domain.List{}, err
	}

	if !list.BelongsToUser(userID) {
		return domain.List{}, domain.ErrListForbidden
	}

	return list, nil
}
