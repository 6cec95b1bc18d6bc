package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// ExpenseRepositoryPG implements domain.ExpenseRepository using PostgreSQL.
type ExpenseRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewExpenseRepository creates a new expense repo.
func NewExpenseRepository(sql infra.SQLExecutor) *ExpenseRepositoryPG {
	return &ExpenseRepositoryPG{sql: sql}
}

// GetByID loads an expense, returning domain.ErrNotFound when absent.
func (r *ExpenseRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	var e domain.Expense
	row := r.sql.QueryRow(ctx, sqlinline.QGetExpense, id)
	err := row.Scan(&e.ID, &e.CollectiveID, &e.UserID, &e.Amount, &e.Currency, &e.Description, &e.Status, &e.IncurredAt, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// MarkPaid flips the expense status after its payout transaction exists.
func (r *ExpenseRepositoryPG) MarkPaid(ctx context.Context, id int64) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkExpensePaid, id)
	return err
}
