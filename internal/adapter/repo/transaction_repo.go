package repo

import (
	"context"
	"time"

	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/sqlinline"
)

// TransactionRepositoryPG implements domain.TransactionRepository using
// PostgreSQL.
type TransactionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewTransactionRepository creates a new transaction repo.
func NewTransactionRepository(sql infra.SQLExecutor) *TransactionRepositoryPG {
	return &TransactionRepositoryPG{sql: sql}
}

// Create inserts a ledger entry and fills its ID and CreatedAt.
func (r *TransactionRepositoryPG) Create(ctx context.Context, tx *domain.Transaction) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertTransaction,
		tx.Type, tx.Description, tx.Amount, tx.Currency,
		tx.NetAmountInCollectiveCurrency, tx.TxnCurrency,
		tx.TxnCurrencyFxRate, tx.AmountInTxnCurrency,
		tx.PaymentProcessorFeeInTxnCurrency,
		tx.HostFeeInTxnCurrency, tx.PlatformFeeInTxnCurrency,
		tx.ExpenseID, tx.UserID, tx.CollectiveID, tx.HostID,
	)
	return row.Scan(&tx.ID, &tx.CreatedAt)
}

// FindByCollectives returns transactions for the given collectives with
// created_at in [startDate, endDate), newest first. A zero query limit means
// no limit; IncludeRelated additionally loads user and collective snapshots.
func (r *TransactionRepositoryPG) FindByCollectives(ctx context.Context, collectiveIDs []int64, startDate, endDate time.Time, query domain.TransactionQuery) ([]domain.Transaction, error) {
	stmt := sqlinline.QListTransactionsByCollectives
	if query.IncludeRelated {
		stmt = sqlinline.QListTransactionsByCollectivesExpanded
	}

	rows, err := r.sql.Query(ctx, stmt, collectiveIDs, startDate, endDate, query.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		dest := []any{
			&tx.ID, &tx.Type, &tx.Description, &tx.Amount, &tx.Currency,
			&tx.NetAmountInCollectiveCurrency, &tx.TxnCurrency,
			&tx.TxnCurrencyFxRate, &tx.AmountInTxnCurrency,
			&tx.PaymentProcessorFeeInTxnCurrency,
			&tx.HostFeeInTxnCurrency, &tx.PlatformFeeInTxnCurrency,
			&tx.NetAmountInTxnCurrency,
			&tx.ExpenseID, &tx.UserID, &tx.CollectiveID, &tx.HostID, &tx.PaymentMethodID,
			&tx.CreatedAt,
		}
		var user relatedUser
		var collective relatedCollective
		if query.IncludeRelated {
			dest = append(dest,
				&user.firstName, &user.lastName, &user.email, &user.image,
				&collective.slug, &collective.name, &collective.image,
			)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if query.IncludeRelated {
			tx.User = user.minimal(tx.UserID)
			tx.Collective = collective.minimal(tx.CollectiveID)
		}
		items = append(items, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AttachPaymentMethod links a stored payout instrument to a persisted
// transaction.
func (r *TransactionRepositoryPG) AttachPaymentMethod(ctx context.Context, transactionID, paymentMethodID int64) error {
	_, err := r.sql.Exec(ctx, sqlinline.QAttachPaymentMethod, transactionID, paymentMethodID)
	return err
}

type relatedUser struct {
	firstName, lastName, email, image string
}

func (u relatedUser) minimal(id int64) *domain.UserMinimal {
	full := domain.User{ID: id, Email: u.email, FirstName: u.firstName, LastName: u.lastName, Image: u.image}
	m := full.Minimal()
	return &m
}

type relatedCollective struct {
	slug, name, image string
}

func (c relatedCollective) minimal(id int64) *domain.CollectiveMinimal {
	full := domain.Collective{ID: id, Slug: c.slug, Name: c.name, Image: c.image}
	m := full.Minimal()
	return &m
}
