package domain

import "time"

// ExpenseStatus enumerates the reimbursement lifecycle.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusPaid     ExpenseStatus = "PAID"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

// Expense is a reimbursement request tied to a collective, denominated in its
// own currency (integer cents).
type Expense struct {
	ID           int64
	CollectiveID int64
	UserID       int64
	Amount       int64
	Currency     string
	Description  string
	Status       ExpenseStatus
	IncurredAt   time.Time
	CreatedAt    time.Time
}

// IncurredOrCreatedAt is the reference date for currency conversion.
func (e *Expense) IncurredOrCreatedAt() time.Time {
	if !e.IncurredAt.IsZero() {
		return e.IncurredAt
	}
	return e.CreatedAt
}
