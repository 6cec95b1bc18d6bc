// Package paypal models the slice of the PayPal adaptive-payments response
// contract the ledger consumes. The shapes are an external contract; they are
// parsed and validated here so the rest of the service only ever sees typed,
// checked data.
package paypal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ledger/internal/domain"
)

// Payment execution statuses the ledger distinguishes. Anything else is an
// unexpected gateway state.
const (
	StatusCompleted = "COMPLETED"
	StatusCreated   = "CREATED"
)

// SenderFees is the fee charged to the sender, in float currency units.
type SenderFees struct {
	Amount float64 `json:"amount"`
}

// CurrencyConversion carries the gateway's host-to-expense exchange rate.
type CurrencyConversion struct {
	ExchangeRate float64 `json:"exchangeRate"`
}

// DefaultFundingPlan describes how a completed payment was funded.
type DefaultFundingPlan struct {
	SenderFees         *SenderFees         `json:"senderFees"`
	CurrencyConversion *CurrencyConversion `json:"currencyConversion"`
}

// CreatePaymentResponse is the response to the initial Pay call.
type CreatePaymentResponse struct {
	PaymentApprovalURL string              `json:"paymentApprovalUrl"`
	DefaultFundingPlan *DefaultFundingPlan `json:"defaultFundingPlan"`
}

// ExecutePaymentResponse is the response to executing a created payment.
type ExecutePaymentResponse struct {
	PaymentExecStatus string `json:"paymentExecStatus"`
}

// PaymentResponses bundles the gateway responses for one paid expense.
type PaymentResponses struct {
	CreatePaymentResponse  *CreatePaymentResponse  `json:"createPaymentResponse"`
	ExecutePaymentResponse *ExecutePaymentResponse `json:"executePaymentResponse"`
}

// Settlement is the ledger-relevant outcome of a completed payment: the
// processor fee in collective-currency cents, the same fee converted to the
// transaction (host) currency, and the fx rate the gateway applied.
type Settlement struct {
	FeeInCollectiveCents int64
	FeeInTxnCurrency     decimal.Decimal
	FxRate               float64
}

// Settle gates on the execution status and extracts the settlement. A CREATED
// status means the payment needs manual approval and yields
// domain.PaymentActionRequiredError; any status other than COMPLETED yields
// domain.GatewayError. Malformed response shapes are rejected.
func (p *PaymentResponses) Settle(expenseID int64) (*Settlement, error) {
	if p == nil || p.CreatePaymentResponse == nil || p.ExecutePaymentResponse == nil {
		return nil, fmt.Errorf("malformed payment responses for expense %d", expenseID)
	}

	switch p.ExecutePaymentResponse.PaymentExecStatus {
	case StatusCompleted:
		// fall through to fee extraction
	case StatusCreated:
		// Without a preapproval key the gateway creates a payKey the
		// payer has to approve on paypal.com before funds move.
		return nil, &domain.PaymentActionRequiredError{ApprovalURL: p.CreatePaymentResponse.PaymentApprovalURL}
	default:
		return nil, &domain.GatewayError{ExpenseID: expenseID, Status: p.ExecutePaymentResponse.PaymentExecStatus}
	}

	plan := p.CreatePaymentResponse.DefaultFundingPlan
	if plan == nil || plan.SenderFees == nil {
		return nil, fmt.Errorf("completed payment for expense %d is missing its funding plan", expenseID)
	}

	// The gateway reports the fee as a float in currency units.
	fee := decimal.NewFromFloat(plan.SenderFees.Amount).Mul(decimal.NewFromInt(100))

	// The exchange rate converts host currency into expense currency;
	// absent conversion means both sides settled in the same currency.
	fxrate := 1.0
	if plan.CurrencyConversion != nil {
		fxrate = plan.CurrencyConversion.ExchangeRate
	}
	if fxrate == 0 {
		return nil, fmt.Errorf("completed payment for expense %d carries a zero exchange rate", expenseID)
	}

	return &Settlement{
		FeeInCollectiveCents: fee.Round(0).IntPart(),
		FeeInTxnCurrency:     fee.Div(decimal.NewFromFloat(fxrate)),
		FxRate:               fxrate,
	}, nil
}
