package bundlemeterpolicy

import "github.com/flexprice/billing-engine/internal/types"

// BundleMeterPolicy is the default entitlement policy for one meter key
// within one app of a Bundle; ContractOverride layers on top of it.
type BundleMeterPolicy struct {
	ID             string              `db:"id" json:"id"`
	BundleID       string              `db:"bundle_id" json:"bundleId"`
	AppID          string              `db:"app_id" json:"appId"`
	MeterKey       string              `db:"meter_key" json:"meterKey"`
	LimitType      types.LimitType     `db:"limit_type" json:"limitType"`
	IncludedAmount *int64              `db:"included_amount" json:"includedAmount,omitempty"`
	Enforcement    types.Enforcement   `db:"enforcement" json:"enforcement"`
	OverageBilling types.OverageBilling `db:"overage_billing" json:"overageBilling"`
}

// Default is the floor every meter key starts from before any bundle
// policy or contract override is layered on, per §4.E's merge cascade.
func Default() BundleMeterPolicy {
	return BundleMeterPolicy{
		LimitType:      types.LimitTypeNone,
		Enforcement:    types.EnforcementNone,
		OverageBilling: types.OverageBillingNone,
	}
}
