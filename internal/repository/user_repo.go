package repository

import (
	"context"
	"errors"
	"fmt"

	"bookiteasy/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of pgxpool.Pool the Postgres stores use.
// pgxmock's pool satisfies it, which keeps the stores testable without
// a live server.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserStore defines operations for user records
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	// FindByEmail matches case-insensitively and returns (nil, nil) when
	// no user exists; absence is not an error at this layer.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type pgUserStore struct {
	db PgxIface
}

// NewUserStore creates a Postgres-backed UserStore
func NewUserStore(db PgxIface) UserStore {
	return &pgUserStore{db: db}
}

func (s *pgUserStore) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, name, email, avatar, role, password_hash, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            ON CONFLICT (id) DO NOTHING`
	if _, err := s.db.Exec(ctx, sql, user.ID, user.Name, user.Email, user.Avatar, user.Role, user.PasswordHash, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *pgUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, avatar, role, password_hash, created_at
            FROM users WHERE LOWER(email) = LOWER($1)`
	err := s.db.QueryRow(ctx, sql, email).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (s *pgUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, avatar, role, password_hash, created_at
            FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}
