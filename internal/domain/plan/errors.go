package plan

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(code string) error {
	return ierr.NewErrorf("plan not found: %s", code).
		Mark(ierr.ErrNotFound)
}
