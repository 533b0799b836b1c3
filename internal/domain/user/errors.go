package user

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(appID, externalRef string) error {
	return ierr.NewErrorf("user not found: app=%s externalRef=%s", appID, externalRef).
		Mark(ierr.ErrNotFound)
}
