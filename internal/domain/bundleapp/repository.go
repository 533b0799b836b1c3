package bundleapp

import "context"

// Repository defines persistence operations for BundleApp.
type Repository interface {
	Create(ctx context.Context, b *BundleApp) error
	ListByBundleID(ctx context.Context, bundleID string) ([]*BundleApp, error)
	GetByBundleAndAppID(ctx context.Context, bundleID, appID string) (*BundleApp, error)
}
