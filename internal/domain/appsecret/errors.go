package appsecret

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(kid string) error {
	return ierr.NewErrorf("app secret not found for kid: %s", kid).
		Mark(ierr.ErrUnauthorized)
}

func ErrNotActive(kid string) error {
	return ierr.NewErrorf("app secret not active: %s", kid).
		Mark(ierr.ErrUnauthorized)
}
