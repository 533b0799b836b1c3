package ledgeraccount

import (
	"context"

	"github.com/flexprice/billing-engine/internal/types"
)

// Repository defines persistence operations for LedgerAccount.
type Repository interface {
	// GetOrCreate reads the account; on miss it inserts one, and on a
	// unique-violation race it re-reads, per §4.L.
	GetOrCreate(ctx context.Context, appID, billToID string, accountType types.LedgerAccountType) (*LedgerAccount, error)
}
