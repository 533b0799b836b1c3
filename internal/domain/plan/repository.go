package plan

import "context"

// Repository defines persistence operations for Plan.
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	GetByCode(ctx context.Context, appID, code string) (*Plan, error)
}
