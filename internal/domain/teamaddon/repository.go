package teamaddon

import "context"

// Repository defines persistence operations for TeamAddon.
type Repository interface {
	Create(ctx context.Context, t *TeamAddon) error
	ListByTeam(ctx context.Context, teamID string) ([]*TeamAddon, error)
}
