package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/adapter/database/postgres"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/port"
)

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "email", "name", "encrypted_password", "is_active", "failed_login_attempts", "created_at", "updated_at").
		Values(user.UUID.String(), user.Email, user.Name, user.EncryptedPassword, user.IsActive, user.FailedLoginAttempts, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.Exec(ctx, stmt, args...); err != nil {
		return domain.User{}, err
	}

	return ur.GetByEmail(ctx, user.Email)
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) UpdateName(ctx context.Context, id int, name string) error {
	return ur.update(ctx, id, sq.Eq{"name": name})
}

func (ur *UserRepository) UpdatePassword(ctx context.Context, id int, encrypted string) error {
	return ur.update(ctx, id, sq.Eq{"encrypted_password": encrypted})
}

func (ur *UserRepository) SetFailedLoginAttempts(ctx context.Context, id int, attempts int) error {
	return ur.update(ctx, id, sq.Eq{"failed_login_attempts": attempts})
}

func (ur *UserRepository) getBy(ctx context.Context, cond sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(
		"id", "uuid", "email", "name", "encrypted_password",
		"is_active", "failed_login_attempts", "created_at", "updated_at",
	).
		From("users").
		Where(cond).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	row := ur.db.QueryRow(ctx, stmt, args...)

	var user domain.User
	var uuidStr string

	err = row.Scan(
		&user.ID,
		&uuidStr,
		&user.Email,
		&user.Name,
		&user.EncryptedPassword,
		&user.IsActive,
		&user.FailedLoginAttempts,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}

		return domain.User{}, err
	}

	user.UUID, err = uuid.Parse(uuidStr)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) update(ctx context.Context, id int, set sq.Eq) error {
	builder := ur.db.QueryBuilder.Update("users").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	for column, value := range set {
		builder = builder.Set(column, value)
	}

	stmt, args, err := builder.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
