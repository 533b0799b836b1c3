package externalteamref

import "context"

// Repository defines persistence operations for ExternalTeamRef.
type Repository interface {
	Create(ctx context.Context, r *ExternalTeamRef) error
	Get(ctx context.Context, appID, externalTeamID string) (*ExternalTeamRef, error)
}
