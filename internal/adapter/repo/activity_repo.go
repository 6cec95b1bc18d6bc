package repo

import (
	"context"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// ActivityRepositoryPG implements domain.ActivityRepository using PostgreSQL.
type ActivityRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewActivityRepository creates a new activity repo.
func NewActivityRepository(sql infra.SQLExecutor) *ActivityRepositoryPG {
	return &ActivityRepositoryPG{sql: sql}
}

// Create inserts an activity event and fills its ID and CreatedAt.
func (r *ActivityRepositoryPG) Create(ctx context.Context, activity *domain.Activity) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertActivity,
		activity.Type, activity.UserID, activity.CollectiveID, activity.TransactionID, []byte(activity.Data),
	)
	return row.Scan(&activity.ID, &activity.CreatedAt)
}
