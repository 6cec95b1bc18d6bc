package domain

import (
	"context"
	"time"
)

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByCollectives(ctx context.Context, collectiveIDs []int64, startDate, endDate time.Time, query TransactionQuery) ([]Transaction, error)
	AttachPaymentMethod(ctx context.Context, transactionID, paymentMethodID int64) error
}

// ActivityRepository persists activity events.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
}

// UserRepository defines access methods for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

// CollectiveRepository defines access methods for collectives and hosts.
type CollectiveRepository interface {
	GetByID(ctx context.Context, id int64) (*Collective, error)
	GetHostByID(ctx context.Context, id int64) (*Host, error)
}

// ExpenseRepository defines access methods for expenses.
type ExpenseRepository interface {
	GetByID(ctx context.Context, id int64) (*Expense, error)
	MarkPaid(ctx context.Context, id int64) error
}

// PaymentMethodRepository defines access methods for stored payout instruments.
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, id int64) (*PaymentMethod, error)
}
