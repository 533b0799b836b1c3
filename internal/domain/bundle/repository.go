package bundle

import "context"

// Repository defines persistence operations for Bundle.
type Repository interface {
	Create(ctx context.Context, b *Bundle) error
	Get(ctx context.Context, id string) (*Bundle, error)
}
