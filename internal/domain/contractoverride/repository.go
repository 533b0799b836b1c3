package contractoverride

import "context"

// Repository defines persistence operations for ContractOverride.
type Repository interface {
	Create(ctx context.Context, o *ContractOverride) error
	ListByContractAndAppID(ctx context.Context, contractID, appID string) ([]*ContractOverride, error)
}
