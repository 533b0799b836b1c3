package jtiusage

import (
	"context"
	"time"
)

// Repository defines persistence operations for JtiUsage.
type Repository interface {
	// Insert attempts to record jti. Returns true, nil on first sight;
	// false, nil on a unique-violation (token already used).
	Insert(ctx context.Context, jti string, expiresAt time.Time) (inserted bool, err error)
}
