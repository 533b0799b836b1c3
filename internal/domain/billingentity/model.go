package billingentity

import "github.com/flexprice/billing-engine/internal/types"

// BillingEntity is the recipient of monetary truth: every invoice and
// ledger entry is addressed to a BillingEntity, never directly to a Team.
// Kept separate from Team so a future non-team entity can bill without a
// schema change.
type BillingEntity struct {
	ID     string                  `db:"id" json:"id"`
	Type   types.BillingEntityType `db:"type" json:"type"`
	TeamID string                  `db:"team_id" json:"teamId"`

	types.BaseModel
}
