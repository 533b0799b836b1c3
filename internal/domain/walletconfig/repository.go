package walletconfig

import "context"

// Repository defines persistence operations for WalletConfig.
type Repository interface {
	Get(ctx context.Context, teamID, appID string) (*WalletConfig, error)
	Upsert(ctx context.Context, c *WalletConfig) error
}
