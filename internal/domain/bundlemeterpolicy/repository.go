package bundlemeterpolicy

import "context"

// Repository defines persistence operations for BundleMeterPolicy.
type Repository interface {
	Create(ctx context.Context, p *BundleMeterPolicy) error
	ListByBundleAndAppID(ctx context.Context, bundleID, appID string) ([]*BundleMeterPolicy, error)
}
