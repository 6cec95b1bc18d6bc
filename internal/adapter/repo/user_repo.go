package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository using PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new user repo.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// GetByID loads a user, returning domain.ErrNotFound when absent.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	row := r.sql.QueryRow(ctx, sqlinline.QGetUser, id)
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Image, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
