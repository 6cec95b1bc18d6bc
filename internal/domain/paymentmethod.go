package domain

import "time"

// PaymentMethodService identifies the processor behind a payment method.
type PaymentMethodService string

const (
	PaymentMethodServicePayPal PaymentMethodService = "paypal"
	PaymentMethodServiceManual PaymentMethodService = "manual"
)

// PaymentMethod is a stored payout instrument. For PayPal preapprovals the
// Token holds the preapproval key.
type PaymentMethod struct {
	ID        int64
	UserID    int64
	Service   PaymentMethodService
	Token     string
	CreatedAt time.Time
}
