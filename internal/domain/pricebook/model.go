package pricebook

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// PriceBook is an app-scoped, versioned pricing document. A pricing query
// selects the highest-version book of the requested kind whose
// [effectiveFrom, effectiveTo) window contains the event timestamp.
type PriceBook struct {
	ID            string              `db:"id" json:"id"`
	AppID         string              `db:"app_id" json:"appId"`
	Kind          types.PriceBookKind `db:"kind" json:"kind"`
	Version       int                 `db:"version" json:"version"`
	Currency      string              `db:"currency" json:"currency"`
	EffectiveFrom time.Time           `db:"effective_from" json:"effectiveFrom"`
	EffectiveTo   *time.Time          `db:"effective_to" json:"effectiveTo,omitempty"`
}

// Covers reports whether the book's effective window contains at. The
// window is half-open: a book whose EffectiveTo equals at is excluded.
func (b *PriceBook) Covers(at time.Time) bool {
	if at.Before(b.EffectiveFrom) {
		return false
	}
	return b.EffectiveTo == nil || at.Before(*b.EffectiveTo)
}
