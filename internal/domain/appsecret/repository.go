package appsecret

import "context"

// Repository defines persistence operations for AppSecret.
type Repository interface {
	Create(ctx context.Context, s *AppSecret) error
	GetByKID(ctx context.Context, kid string) (*AppSecret, error)
	ListByAppID(ctx context.Context, appID string) ([]*AppSecret, error)
	Revoke(ctx context.Context, kid string) error
}
