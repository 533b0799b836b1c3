package app

import "context"

// Repository defines persistence operations for App.
type Repository interface {
	Create(ctx context.Context, a *App) error
	Get(ctx context.Context, id string) (*App, error)
	List(ctx context.Context, limit, offset int) ([]*App, int, error)
	Update(ctx context.Context, a *App) error
}
