package teamsubscription

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrNotFound(stripeSubscriptionID string) error {
	return ierr.NewErrorf("team subscription not found: %s", stripeSubscriptionID).
		Mark(ierr.ErrNotFound)
}
