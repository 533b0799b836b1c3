package billingentity

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(teamID string) error {
	return ierr.NewErrorf("billing entity not found for team: %s", teamID).
		Mark(ierr.ErrNotFound)
}
