package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"ledger/internal/domain"
	"ledger/internal/paypal"
)

// CreateFromPaidExpense records the ledger entry for a paid expense and emits
// the matching activity.
//
// When paymentResponses is set (PayPal payout) the gateway's execution status
// gates the whole operation: COMPLETED proceeds, CREATED fails with
// domain.PaymentActionRequiredError, anything else with domain.GatewayError —
// in both failure cases nothing is persisted. The processor fee and fx rate
// come from the gateway's funding plan. Without paymentResponses (manual
// payout or add funds) the fx rate is looked up for the expense's incurred
// date and the fee is zero.
//
// An fx rate that resolves to NaN is tolerated: the transaction is persisted
// with TxnCurrencyFxRate and AmountInTxnCurrency unset.
//
// The returned transaction is persisted even when the error is non-nil, as
// long as the failure happened after the insert (payment-method attachment is
// best-effort, activity emission is not rolled back).
func (s *Service) CreateFromPaidExpense(
	ctx context.Context,
	host *domain.Host,
	paymentMethod *domain.PaymentMethod,
	expense *domain.Expense,
	paymentResponses *paypal.PaymentResponses,
	preapprovalDetails json.RawMessage,
	userID int64,
) (*domain.Transaction, error) {
	expenseCurrency, err := domain.NormalizeCurrency(expense.Currency)
	if err != nil {
		return nil, fmt.Errorf("expense %d: %w", expense.ID, err)
	}
	hostCurrency, err := domain.NormalizeCurrency(host.Currency)
	if err != nil {
		return nil, fmt.Errorf("host %d: %w", host.ID, err)
	}

	var (
		fxrate               float64
		feeInCollectiveCents int64
		feeInTxnCurrency     decimal.Decimal
	)

	if paymentResponses != nil {
		settlement, err := paymentResponses.Settle(expense.ID)
		if err != nil {
			return nil, err
		}
		fxrate = settlement.FxRate
		feeInCollectiveCents = settlement.FeeInCollectiveCents
		feeInTxnCurrency = settlement.FeeInTxnCurrency
	} else {
		rate, err := s.rates.GetFxRate(ctx, expenseCurrency, hostCurrency, expense.IncurredOrCreatedAt())
		if err != nil {
			return nil, fmt.Errorf("fx rate %s/%s for expense %d: %w", expenseCurrency, hostCurrency, expense.ID, err)
		}
		fxrate = rate
	}

	// All expenses are assumed to be in the collective currency; otherwise
	// the ledger would need a triple currency conversion.
	tx := &domain.Transaction{
		Type:                             domain.TransactionTypeExpense,
		Description:                      expense.Description,
		Amount:                           -expense.Amount,
		Currency:                         expenseCurrency,
		NetAmountInCollectiveCurrency:    -(expense.Amount + feeInCollectiveCents),
		TxnCurrency:                      hostCurrency,
		PaymentProcessorFeeInTxnCurrency: feeInTxnCurrency,
		ExpenseID:                        expense.ID,
		UserID:                           userID,
		CollectiveID:                     expense.CollectiveID,
		HostID:                           host.ID,
	}

	if !math.IsNaN(fxrate) {
		rate := fxrate
		amountInTxnCurrency := int64(math.Round(-fxrate * float64(expense.Amount)))
		tx.TxnCurrencyFxRate = &rate
		tx.AmountInTxnCurrency = &amountInTxnCurrency
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction for expense %d: %w", expense.ID, err)
	}

	if paymentMethod != nil {
		if err := s.transactions.AttachPaymentMethod(ctx, tx.ID, paymentMethod.ID); err != nil {
			s.logger.Warn().Err(err).
				Int64("transaction_id", tx.ID).
				Int64("payment_method_id", paymentMethod.ID).
				Msg("payment method not attached to transaction")
		} else {
			id := paymentMethod.ID
			tx.PaymentMethodID = &id
		}
	}

	if err := s.createPaidExpenseActivity(ctx, tx, paymentResponses, preapprovalDetails); err != nil {
		s.logger.Error().Err(err).
			Int64("transaction_id", tx.ID).
			Msg("paid expense activity not recorded")
		return tx, fmt.Errorf("record paid expense activity: %w", err)
	}

	return tx, nil
}
