package contract

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(id string) error {
	return ierr.NewErrorf("contract not found: %s", id).
		Mark(ierr.ErrNotFound)
}

// ErrActiveContractExists is returned when the partial unique index on
// (billToId) WHERE status='ACTIVE' is violated.
func ErrActiveContractExists(billToID string) error {
	return ierr.NewErrorf("an active contract already exists for bill-to: %s", billToID).
		WithHint("end or pause the existing contract before activating a new one").
		Mark(ierr.ErrAlreadyExists)
}
