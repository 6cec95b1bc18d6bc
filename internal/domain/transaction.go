package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the nature of a ledger entry.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeDonation TransactionType = "DONATION"
)

// Transaction is a signed monetary record in the ledger. Amounts are integer
// cents; outgoing (expense) transactions carry a negative Amount and
// NetAmountInCollectiveCurrency. A transaction is written once and never
// mutated afterwards, except for the optional payment-method reference.
type Transaction struct {
	ID          int64
	Type        TransactionType
	Description string

	// Amount is in the expense currency (collective currency) in cents.
	Amount   int64
	Currency string

	// NetAmountInCollectiveCurrency includes the payment processor fee.
	NetAmountInCollectiveCurrency int64

	// TxnCurrency is the host currency the payout settled in.
	TxnCurrency string

	// TxnCurrencyFxRate and AmountInTxnCurrency stay nil when no usable
	// fx rate was available at creation time.
	TxnCurrencyFxRate   *float64
	AmountInTxnCurrency *int64

	PaymentProcessorFeeInTxnCurrency decimal.Decimal
	HostFeeInTxnCurrency             int64
	PlatformFeeInTxnCurrency         int64
	NetAmountInTxnCurrency           *int64

	ExpenseID       int64
	UserID          int64
	CollectiveID    int64
	HostID          int64
	PaymentMethodID *int64

	CreatedAt time.Time

	// User and Collective are filled only when related entities were
	// requested on a query; they are snapshots, not live associations.
	User       *UserMinimal
	Collective *CollectiveMinimal
}

// TransactionInfo is the public view of a transaction embedded in activity
// payloads and API responses.
type TransactionInfo struct {
	ID                               int64           `json:"id"`
	Type                             TransactionType `json:"type"`
	Description                      string          `json:"description"`
	Amount                           int64           `json:"amount"`
	Currency                         string          `json:"currency"`
	NetAmountInCollectiveCurrency    int64           `json:"netAmountInCollectiveCurrency"`
	TxnCurrency                      string          `json:"txnCurrency"`
	TxnCurrencyFxRate                *float64        `json:"txnCurrencyFxRate,omitempty"`
	AmountInTxnCurrency              *int64          `json:"amountInTxnCurrency,omitempty"`
	PaymentProcessorFeeInTxnCurrency decimal.Decimal `json:"paymentProcessorFeeInTxnCurrency"`
	ExpenseID                        int64           `json:"ExpenseId"`
	UserID                           int64           `json:"UserId"`
	CollectiveID                     int64           `json:"CollectiveId"`
	HostID                           int64           `json:"HostId"`
	CreatedAt                        time.Time       `json:"createdAt"`
}

// Info returns the public view of the transaction.
func (t *Transaction) Info() TransactionInfo {
	return TransactionInfo{
		ID:                               t.ID,
		Type:                             t.Type,
		Description:                      t.Description,
		Amount:                           t.Amount,
		Currency:                         t.Currency,
		NetAmountInCollectiveCurrency:    t.NetAmountInCollectiveCurrency,
		TxnCurrency:                      t.TxnCurrency,
		TxnCurrencyFxRate:                t.TxnCurrencyFxRate,
		AmountInTxnCurrency:              t.AmountInTxnCurrency,
		PaymentProcessorFeeInTxnCurrency: t.PaymentProcessorFeeInTxnCurrency,
		ExpenseID:                        t.ExpenseID,
		UserID:                           t.UserID,
		CollectiveID:                     t.CollectiveID,
		HostID:                           t.HostID,
		CreatedAt:                        t.CreatedAt,
	}
}

// TransactionQuery narrows FindByCollectives results.
type TransactionQuery struct {
	Limit          int
	IncludeRelated bool
}
