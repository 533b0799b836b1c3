package stripeproductmap

import "context"

// Repository defines persistence operations for StripeProductMap.
type Repository interface {
	Create(ctx context.Context, m *StripeProductMap) error
	ListByPlanID(ctx context.Context, planID string) ([]*StripeProductMap, error)
}
