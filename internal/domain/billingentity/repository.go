package billingentity

import "context"

// Repository defines persistence operations for BillingEntity.
type Repository interface {
	Create(ctx context.Context, b *BillingEntity) error
	Get(ctx context.Context, id string) (*BillingEntity, error)
	GetByTeamID(ctx context.Context, teamID string) (*BillingEntity, error)
}
