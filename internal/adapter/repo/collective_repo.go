package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// CollectiveRepositoryPG implements domain.CollectiveRepository using
// PostgreSQL. Hosts are collectives acting as fiscal sponsors, so both views
// read the same table.
type CollectiveRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewCollectiveRepository creates a new collective repo.
func NewCollectiveRepository(sql infra.SQLExecutor) *CollectiveRepositoryPG {
	return &CollectiveRepositoryPG{sql: sql}
}

// GetByID loads a collective, returning domain.ErrNotFound when absent.
func (r *CollectiveRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Collective, error) {
	var c domain.Collective
	row := r.sql.QueryRow(ctx, sqlinline.QGetCollective, id)
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Image, &c.Currency, &c.HostID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetHostByID loads the fiscal-sponsor view of a collective.
func (r *CollectiveRepositoryPG) GetHostByID(ctx context.Context, id int64) (*domain.Host, error) {
	var h domain.Host
	row := r.sql.QueryRow(ctx, sqlinline.QGetHost, id)
	err := row.Scan(&h.ID, &h.Slug, &h.Name, &h.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
