// Package ledger implements the transaction ledger: querying and exporting
// transactions, building ledger entries for paid expenses, and emitting the
// matching activity events.
package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ledger/internal/domain"
)

// PlatformEpoch is the earliest date any transaction can carry; queries with
// no explicit start date begin here.
var PlatformEpoch = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// FxRateSource looks up the multiplicative factor converting one currency
// into another as of a given date.
type FxRateSource interface {
	GetFxRate(ctx context.Context, from, to string, asOf time.Time) (float64, error)
}

// Service wires the ledger use cases to their collaborators.
type Service struct {
	transactions domain.TransactionRepository
	activities   domain.ActivityRepository
	users        domain.UserRepository
	collectives  domain.CollectiveRepository
	rates        FxRateSource
	logger       zerolog.Logger
}

// NewService creates a ledger service.
func NewService(
	transactions domain.TransactionRepository,
	activities domain.ActivityRepository,
	users domain.UserRepository,
	collectives domain.CollectiveRepository,
	rates FxRateSource,
	logger zerolog.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		activities:   activities,
		users:        users,
		collectives:  collectives,
		rates:        rates,
		logger:       logger,
	}
}
