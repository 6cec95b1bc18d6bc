package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// PaymentActionRequiredError reports that the gateway created the payment but
// needs the caller to approve it manually. It maps to a 400-class response:
// the request was fine, the caller just has one more step to take.
type PaymentActionRequiredError struct {
	ApprovalURL string
}

func (e *PaymentActionRequiredError) Error() string {
	return fmt.Sprintf("please approve this payment manually on %s", e.ApprovalURL)
}

// GatewayError reports an unexpected gateway state while paying an expense.
// It maps to a 500-class response.
type GatewayError struct {
	ExpenseID int64
	Status    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("unknown gateway state %q while creating transaction for expense %d", e.Status, e.ExpenseID)
}
