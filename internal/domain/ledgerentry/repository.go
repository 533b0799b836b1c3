package ledgerentry

import (
	"context"
	"time"
)

// Repository defines persistence operations for LedgerEntry.
type Repository interface {
	// Create inserts the entry within a transaction holding the caller's
	// per-account advisory lock. Returns true, nil when inserted; false,
	// nil on an idempotencyKey unique-violation (a duplicate).
	Create(ctx context.Context, e *LedgerEntry) (created bool, err error)
	// Balance sums AmountMinor over every entry for the account; 0 if the
	// account has no entries (or does not exist).
	Balance(ctx context.Context, appID, billToID, accountType string) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]*LedgerEntry, int, error)
}

// ListFilter scopes getEntries per §4.L.
type ListFilter struct {
	AppID    string
	BillToID string
	Type     string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
