package addon

import "context"

// Repository defines persistence operations for Addon.
type Repository interface {
	Create(ctx context.Context, a *Addon) error
	Get(ctx context.Context, id string) (*Addon, error)
}
