package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"taskhub/internal/adapter/database/postgres"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/port"
	"taskhub/pkg/tracing"
)

const taskColumns = `t.id, t.uuid, t.title, t.description, t.status, t.priority,
	t.due_date, t.completed_at, t.user_id, t.list_id, t.created_at, t.updated_at,
	l.uuid, l.name, l.color`

const taskFrom = ` FROM tasks t LEFT JOIN lists l ON l.id = t.list_id`

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.TaskWithList, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "title", "description", "status", "priority", "due_date", "completed_at", "user_id", "list_id", "created_at", "updated_at").
		Values(task.UUID.String(), task.Title, task.Description, string(task.Status), string(task.Priority), task.DueDate, task.CompletedAt, task.UserID, task.ListID, task.CreatedAt, task.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.TaskWithList{}, err
	}

	if _, err := tr.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.TaskWithList{}, err
	}

	return tr.GetByUUID(ctx, task.UUID.String())
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string) (domain.TaskWithList, error) {
	query := "SELECT " + taskColumns + taskFrom + " WHERE t.uuid = $1 LIMIT 1"

	row := tr.db.QueryRow(ctx, query, uid)

	task, err := scanTask(row)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaskWithList{}, domain.ErrNotFound
		}

		return domain.TaskWithList{}, err
	}

	return task, nil
}

func (tr *TaskRepository) List(ctx context.Context, userID int, filter port.TaskFilter) ([]domain.TaskWithList, int, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.tasks.List", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", userID),
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	})

	defer span.End()

	conditions := []string{"t.user_id = $1"}
	args := []interface{}{userID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}

	if filter.Priority != nil {
		args = append(args, string(*filter.Priority))
		conditions = append(conditions, fmt.Sprintf("t.priority = $%d", len(args)))
	}

	if filter.ListID != nil {
		args = append(args, *filter.ListID)
		conditions = append(conditions, fmt.Sprintf("t.list_id = $%d", len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int

	countQuery := "SELECT COUNT(*)" + taskFrom + where

	if err := tr.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	// Dated tasks first, soonest first; undated tasks last, newest first.
	query := "SELECT " + taskColumns + taskFrom + where +
		" ORDER BY (t.due_date IS NULL) ASC, t.due_date ASC, t.created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := tr.db.Query(ctx, query, args...)

	if err != nil {
		slog.Error("Error fetching tasks", "error", err)
		return nil, 0, err
	}

	defer rows.Close()

	tasks, err := collectTasks(rows)

	if err != nil {
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(tasks)))

	return tasks, total, nil
}

func (tr *TaskRepository) CountByStatus(ctx context.Context, userID int) (domain.StatusCounters, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'TODO' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'IN_PROGRESS' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'DONE' THEN 1 ELSE 0 END), 0)
		FROM tasks WHERE user_id = $1`

	var counters domain.StatusCounters

	err := tr.db.QueryRow(ctx, query, userID).Scan(
		&counters.Total,
		&counters.Todo,
		&counters.InProgress,
		&counters.Done,
	)

	if err != nil {
		return domain.StatusCounters{}, err
	}

	return counters, nil
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task, entry *domain.StatusHistoryEntry) (domain.TaskWithList, error) {
	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return domain.TaskWithList{}, err
	}

	defer tx.Rollback(ctx)

	query := `UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4,
		due_date = $5, completed_at = $6, list_id = $7, updated_at = $8 WHERE id = $9`

	result, err := tx.Exec(ctx, query,
		task.Title, task.Description, string(task.Status), string(task.Priority),
		task.DueDate, task.CompletedAt, task.ListID, task.UpdatedAt, task.ID,
	)

	if err != nil {
		slog.Error("Error updating task", "error", err)
		return domain.TaskWithList{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.TaskWithList{}, domain.ErrNotFound
	}

	if entry != nil {
		_, err = tx.Exec(ctx,
			"INSERT INTO status_history (task_id, old_status, new_status, changed_at) VALUES ($1, $2, $3, $4)",
			entry.TaskID, string(entry.OldStatus), string(entry.NewStatus), entry.ChangedAt,
		)

		if err != nil {
			slog.Error("Error recording status change", "error", err)
			return domain.TaskWithList{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TaskWithList{}, err
	}

	return tr.GetByUUID(ctx, task.UUID.String())
}

func (tr *TaskRepository) Delete(ctx context.Context, id int) error {
	query := tr.db.QueryBuilder.Delete("tasks").Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (tr *TaskRepository) Search(ctx context.Context, userID int, keyword string) ([]domain.TaskWithList, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	query := "SELECT " + taskColumns + taskFrom +
		" WHERE t.user_id = $1 AND (LOWER(t.title) LIKE $2 OR LOWER(t.description) LIKE $3)" +
		" ORDER BY t.created_at DESC"

	rows, err := tr.db.Query(ctx, query, userID, pattern, pattern)

	if err != nil {
		slog.Error("Error searching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	return collectTasks(rows)
}

func (tr *TaskRepository) HistoryByTaskID(ctx context.Context, taskID int) ([]domain.StatusHistoryEntry, error) {
	query := tr.db.QueryBuilder.Select("id", "task_id", "old_status", "new_status", "changed_at").
		From("status_history").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("changed_at ASC", "id ASC")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	entries := []domain.StatusHistoryEntry{}

	for rows.Next() {
		var entry domain.StatusHistoryEntry
		var oldStatus, newStatus string

		if err := rows.Scan(&entry.ID, &entry.TaskID, &oldStatus, &newStatus, &entry.ChangedAt); err != nil {
			return nil, err
		}

		entry.OldStatus = domain.TaskStatus(oldStatus)
		entry.NewStatus = domain.TaskStatus(newStatus)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.TaskWithList, error) {
	var task domain.TaskWithList
	var uuidStr, status, priority string
	var dueDate sql.NullString
	var completedAt sql.NullTime
	var listID sql.NullInt64
	var listUUID, listName, listColor sql.NullString

	err := row.Scan(
		&task.ID, &uuidStr, &task.Title, &task.Description, &status, &priority,
		&dueDate, &completedAt, &task.UserID, &listID, &task.CreatedAt, &task.UpdatedAt,
		&listUUID, &listName, &listColor,
	)

	if err != nil {
		return domain.TaskWithList{}, err
	}

	task.UUID, err = uuid.Parse(uuidStr)

	if err != nil {
		return domain.TaskWithList{}, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)

	if dueDate.Valid {
		task.DueDate = &dueDate.String
	}

	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	if listID.Valid {
		id := int(listID.Int64)
		task.ListID = &id
	}

	if listUUID.Valid {
		parsed, err := uuid.Parse(listUUID.String)

		if err != nil {
			return domain.TaskWithList{}, fmt.Errorf("corrupt list uuid on task %s: %w", uuidStr, err)
		}

		task.List = &domain.ListSummary{
			UUID:  parsed,
			Name:  listName.String,
			Color: listColor.String,
		}
	}

	return task, nil
}

func collectTasks(rows pgx.Rows) ([]domain.TaskWithList, error) {
	tasks := []domain.TaskWithList{}

	for rows.Next() {
		task, err := scanTask(rows)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
