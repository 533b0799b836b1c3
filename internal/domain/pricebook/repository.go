package pricebook

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// Repository defines persistence operations for PriceBook.
type Repository interface {
	Create(ctx context.Context, b *PriceBook) error
	Get(ctx context.Context, id string) (*PriceBook, error)
	// Selected returns the highest-version book of kind active at at, per
	// §4.P's book selection step. Returns nil, nil when none match.
	Selected(ctx context.Context, appID string, kind types.PriceBookKind, at time.Time) (*PriceBook, error)
}
