package app

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(id string) error {
	return ierr.NewErrorf("app not found: %s", id).
		WithHintf("no app exists with id %s", id).
		Mark(ierr.ErrNotFound)
}

func ErrSuspended(id string) error {
	return ierr.NewErrorf("app suspended: %s", id).
		WithHint("this app has been suspended").
		Mark(ierr.ErrForbidden)
}
