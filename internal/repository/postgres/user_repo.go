package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventdiscovery/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type userRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, salt, password, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.Salt, u.Password, u.Type, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, type, username, salt, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, type, username, salt, password, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return r.get(ctx, query, username)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Type, &u.Username, &u.Salt, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, salt, digest string) error {
	query := `UPDATE users SET salt = $1, password = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, salt, digest, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
