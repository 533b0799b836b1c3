package ledgerentry

import ierr "github.com/flexprice/billing-engine/internal/errors"

// ErrDuplicate is raised on an idempotencyKey unique-violation. Per §7 it
// is not a caller error in every case — webhooks, period-close, and wallet
// debit swallow it at the callsite.
func ErrDuplicate(idempotencyKey string) error {
	return ierr.NewErrorf("duplicate ledger entry: %s", idempotencyKey).
		Mark(ierr.ErrAlreadyExists)
}
