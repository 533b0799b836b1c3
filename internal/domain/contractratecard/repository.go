package contractratecard

import (
	"context"
	"time"
)

// Repository defines persistence operations for ContractRateCard.
type Repository interface {
	Create(ctx context.Context, c *ContractRateCard) error
	GetEffective(ctx context.Context, contractID string, kind string, at time.Time) (*ContractRateCard, error)
}
