package domain

import (
	"encoding/json"
	"time"
)

// Activity types recorded by the ledger.
const (
	ActivityTypeExpensePaid = "collective.expense.paid"
)

// Activity is an audit/notification event referencing a transaction. The Data
// bag carries denormalized snapshots so notification consumers never need to
// re-query the ledger. Created once, never mutated.
type Activity struct {
	ID            int64
	Type          string
	UserID        int64
	CollectiveID  int64
	TransactionID int64
	Data          json.RawMessage
	CreatedAt     time.Time
}
