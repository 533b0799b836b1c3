package pricerule

import ierr "github.com/flexprice/billing-engine/internal/errors"

// ErrNoMatchingRule is raised when no rule in a selected PriceBook matches
// the event — a systemic condition, not a caller validation error.
func ErrNoMatchingRule(priceBookID, eventType string) error {
	return ierr.NewErrorf("no matching rule: priceBook=%s eventType=%s", priceBookID, eventType).
		Mark(ierr.ErrSystem)
}
