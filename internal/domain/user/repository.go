package user

import "context"

// Repository defines persistence operations for User.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByExternalRef(ctx context.Context, appID, externalRef string) (*User, error)
}
