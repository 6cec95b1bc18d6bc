package ledger

import (
	"context"
	"time"

	"ledger/internal/domain"
)

// GetTransactions returns transactions whose collective is in collectiveIDs
// and whose creation time falls in [startDate, endDate), newest first. A zero
// startDate defaults to PlatformEpoch and a zero endDate to the call time;
// callers with explicit windows should pass both.
func (s *Service) GetTransactions(ctx context.Context, collectiveIDs []int64, startDate, endDate time.Time, query domain.TransactionQuery) ([]domain.Transaction, error) {
	if startDate.IsZero() {
		startDate = PlatformEpoch
	}
	if endDate.IsZero() {
		endDate = time.Now()
	}
	return s.transactions.FindByCollectives(ctx, collectiveIDs, startDate, endDate, query)
}
