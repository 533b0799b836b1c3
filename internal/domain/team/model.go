package team

import "github.com/flexprice/billing-engine/internal/types"

// Team is the billing subject: every usage event, entitlement check, and
// invoice resolves to exactly one team's BillingEntity.
type Team struct {
	ID                 string           `db:"id" json:"id"`
	AppID              string           `db:"app_id" json:"appId"`
	Name               string           `db:"name" json:"name"`
	Kind               types.TeamKind   `db:"kind" json:"kind"`
	OwnerUserID        *string          `db:"owner_user_id" json:"ownerUserId,omitempty"`
	BillingMode        types.BillingMode `db:"billing_mode" json:"billingMode"`
	DefaultCurrency    string           `db:"default_currency" json:"defaultCurrency"`
	ExternalCustomerID *string          `db:"external_customer_id" json:"externalCustomerId,omitempty"`

	types.BaseModel
}

// PendingExternalCustomerPrefix marks a team row mid-claim on the external
// customer-create API (§4.C). A real ID never carries this prefix.
const PendingExternalCustomerPrefix = "pending:"

// IsExternalCustomerPending reports whether the team's ExternalCustomerID is
// a claim placeholder rather than a real external customer ID.
func (t *Team) IsExternalCustomerPending() bool {
	return t.ExternalCustomerID != nil && len(*t.ExternalCustomerID) >= len(PendingExternalCustomerPrefix) &&
		(*t.ExternalCustomerID)[:len(PendingExternalCustomerPrefix)] == PendingExternalCustomerPrefix
}
