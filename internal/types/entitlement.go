package types

// MeterPolicy is the fully resolved entitlement for one meter key, after
// the bundle-default → contract-override merge cascade of §4.E.
type MeterPolicy struct {
	LimitType      LimitType      `json:"limitType"`
	IncludedAmount *int64         `json:"includedAmount,omitempty"`
	Enforcement    Enforcement    `json:"enforcement"`
	OverageBilling OverageBilling `json:"overageBilling"`
}

// Entitlements is the result of resolveEntitlements(appId, teamId).
type Entitlements struct {
	Features    map[string]bool        `json:"features"`
	Meters      map[string]MeterPolicy `json:"meters"`
	BillingMode BillingMode            `json:"billingMode"`
	Billable    bool                   `json:"billable"`
	PlanCode    *string                `json:"planCode,omitempty"`
	PlanName    *string                `json:"planName,omitempty"`
}

// DefaultEntitlements is returned when a team has no active contract
// covering the app and no active subscription on it.
func DefaultEntitlements(billingMode BillingMode) Entitlements {
	return Entitlements{
		Features:    map[string]bool{},
		Meters:      map[string]MeterPolicy{},
		BillingMode: billingMode,
		Billable:    false,
	}
}
