package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// PaymentMethodRepositoryPG implements domain.PaymentMethodRepository using
// PostgreSQL.
type PaymentMethodRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPaymentMethodRepository creates a new payment-method repo.
func NewPaymentMethodRepository(sql infra.SQLExecutor) *PaymentMethodRepositoryPG {
	return &PaymentMethodRepositoryPG{sql: sql}
}

// GetByID loads a payment method, returning domain.ErrNotFound when absent.
func (r *PaymentMethodRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	row := r.sql.QueryRow(ctx, sqlinline.QGetPaymentMethod, id)
	err := row.Scan(&pm.ID, &pm.UserID, &pm.Service, &pm.Token, &pm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pm, nil
}
