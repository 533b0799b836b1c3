package team

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(id string) error {
	return ierr.NewErrorf("team not found: %s", id).
		Mark(ierr.ErrNotFound)
}

// ErrExternalCustomerTimeout is returned when the polling loop in §4.C
// exceeds its 5 second bound waiting for a concurrent claim to resolve.
func ErrExternalCustomerTimeout(teamID string) error {
	return ierr.NewErrorf("timed out waiting for external customer id: %s", teamID).
		Mark(ierr.ErrSystem)
}
