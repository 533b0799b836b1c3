package bundle

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(id string) error {
	return ierr.NewErrorf("bundle not found: %s", id).
		Mark(ierr.ErrNotFound)
}
