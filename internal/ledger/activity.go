package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"ledger/internal/domain"
	"ledger/internal/paypal"
)

type paidExpenseActivityData struct {
	Transaction        domain.TransactionInfo   `json:"transaction"`
	PaymentResponses   *paypal.PaymentResponses `json:"paymentResponses,omitempty"`
	PreapprovalDetails json.RawMessage          `json:"preapprovalDetails,omitempty"`
	User               domain.UserMinimal       `json:"user"`
	Collective         domain.CollectiveMinimal `json:"collective"`
}

// createPaidExpenseActivity stores the notification event for a persisted
// transaction. The user and collective snapshots are resolved sequentially
// through the transaction's references.
func (s *Service) createPaidExpenseActivity(ctx context.Context, tx *domain.Transaction, paymentResponses *paypal.PaymentResponses, preapprovalDetails json.RawMessage) error {
	data := paidExpenseActivityData{
		Transaction:        tx.Info(),
		PaymentResponses:   paymentResponses,
		PreapprovalDetails: preapprovalDetails,
	}

	user, err := s.users.GetByID(ctx, tx.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", tx.UserID, err)
	}
	data.User = user.Minimal()

	collective, err := s.collectives.GetByID(ctx, tx.CollectiveID)
	if err != nil {
		return fmt.Errorf("load collective %d: %w", tx.CollectiveID, err)
	}
	data.Collective = collective.Minimal()

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal activity data: %w", err)
	}

	return s.activities.Create(ctx, &domain.Activity{
		Type:          domain.ActivityTypeExpensePaid,
		UserID:        tx.UserID,
		CollectiveID:  tx.CollectiveID,
		TransactionID: tx.ID,
		Data:          raw,
	})
}
