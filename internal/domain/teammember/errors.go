package teammember

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(teamID, userID string) error {
	return ierr.NewErrorf("team member not found: team=%s user=%s", teamID, userID).
		Mark(ierr.ErrNotFound)
}
