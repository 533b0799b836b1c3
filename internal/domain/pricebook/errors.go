package pricebook

import (
	"time"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
)

// ErrNoPriceBookFound is raised when book selection finds no covering
// PriceBook of the requested kind — a systemic condition (missing pricing
// configuration), not a caller validation error.
func ErrNoPriceBookFound(appID string, kind types.PriceBookKind, at time.Time) error {
	return ierr.NewErrorf("no price book found: app=%s kind=%s at=%s", appID, kind, at).
		Mark(ierr.ErrSystem)
}
