package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/adapter/database/postgres"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/port"
)

type ListRepository struct {
	db *postgres.DB
}

func NewListRepository(db *postgres.DB) port.ListRepository {
	return &ListRepository{db: db}
}

func (lr *ListRepository) Create(ctx context.Context, list domain.List) (domain.List, error) {
	query := lr.db.QueryBuilder.Insert("lists").
		Columns("uuid", "name", "color", "position", "user_id", "created_at", "updated_at").
		Values(list.UUID.String(), list.Name, list.Color, list.Position, list.UserID, list.CreatedAt, list.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.List{}, err
	}

	if _, err := lr.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating list", "error", err)
		return domain.List{}, err
	}

	return lr.GetByUUID(ctx, list.UUID.String())
}

func (lr *ListRepository) GetByID(ctx context.Context, id int) (domain.List, error) {
	return lr.getBy(ctx, sq.Eq{"id": id})
}

func (lr *ListRepository) GetByUUID(ctx context.Context, uid string) (domain.List, error) {
	return lr.getBy(ctx, sq.Eq{"uuid": uid})
}

func (lr *ListRepository) ListByUser(ctx context.Context, userID int) ([]domain.ListWithCount, error) {
	query := `SELECT l.id, l.uuid, l.name, l.color, l.position, l.user_id, l.created_at, l.updated_at,
		COUNT(t.id)
		FROM lists l LEFT JOIN tasks t ON t.list_id = l.id
		WHERE l.user_id = $1
		GROUP BY l.id
		ORDER BY l.position ASC, l.name ASC`

	rows, err := lr.db.Query(ctx, query, userID)

	if err != nil {
		slog.Error("Error fetching lists", "error", err)
		return nil, err
	}

	defer rows.Close()

	lists := []domain.ListWithCount{}

	for rows.Next() {
		var list domain.ListWithCount
		var uuidStr string

		err := rows.Scan(
			&list.ID, &uuidStr, &list.Name, &list.Color, &list.Position,
			&list.UserID, &list.CreatedAt, &list.UpdatedAt, &list.TaskCount,
		)

		if err != nil {
			return nil, err
		}

		list.UUID, err = uuid.Parse(uuidStr)

		if err != nil {
			return nil, err
		}

		lists = append(lists, list)
	}

	return lists, rows.Err()
}

func (lr *ListRepository) Update(ctx context.Context, list domain.List) (domain.List, error) {
	query := lr.db.QueryBuilder.Update("lists").
		SetMap(map[string]interface{}{
			"name":       list.Name,
			"color":      list.Color,
			"position":   list.Position,
			"updated_at": list.UpdatedAt,
		}).
		Where(sq.Eq{"id": list.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.List{}, err
	}

	result, err := lr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return domain.List{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.List{}, domain.ErrNotFound
	}

	return lr.GetByID(ctx, list.ID)
}

// Delete dissociates tasks then removes the list row; one transaction
// so a partial failure never leaves orphaned references.
func (lr *ListRepository) Delete(ctx context.Context, id int) error {
	tx, err := lr.db.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"UPDATE tasks SET list_id = NULL, updated_at = $1 WHERE list_id = $2",
		time.Now(), id,
	)

	if err != nil {
		slog.Error("Error dissociating tasks", "error", err, "list_id", id)
		return err
	}

	result, err := tx.Exec(ctx, "DELETE FROM lists WHERE id = $1", id)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (lr *ListRepository) getBy(ctx context.Context, cond sq.Eq) (domain.List, error) {
	query := lr.db.QueryBuilder.Select("id", "uuid", "name", "color", "position", "user_id", "created_at", "updated_at").
		From("lists").
		Where(cond).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.List{}, err
	}

	row := lr.db.QueryRow(ctx, stmt, args...)

	var list domain.List
	var uuidStr string

	err = row.Scan(
		&list.ID, &uuidStr, &list.Name, &list.Color, &list.Position,
		&list.UserID, &list.CreatedAt, &list.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.List{}, domain.ErrNotFound
		}

		return domain.List{}, err
	}

	list.UUID, err = uuid.Parse(uuidStr)

	if err != nil {
		return domain.List{}, err
	}

	return list, nil
}
