package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/model"
)

// UserStore owns the users collection. Lookups return (nil, nil) when no
// record matches; callers decide whether absence is an error.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.Password, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.one(ctx, `SELECT id, name, email, password, created_at FROM users WHERE id = $1`, id)
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.one(ctx, `SELECT id, name, email, password, created_at FROM users WHERE email = $1`, email)
}

func (s *UserStore) one(ctx context.Context, query string, arg any) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	var user model.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
