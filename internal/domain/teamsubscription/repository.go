package teamsubscription

import "context"

// Repository defines persistence operations for TeamSubscription.
type Repository interface {
	Upsert(ctx context.Context, s *TeamSubscription) error
	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*TeamSubscription, error)
	GetActiveByTeamAndAppID(ctx context.Context, teamID, appID string) (*TeamSubscription, error)
}
