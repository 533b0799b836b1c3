package teamaddon

import "github.com/flexprice/billing-engine/internal/types"

// TeamAddon attaches an Addon to a Team. Quantity defaults to 1.
type TeamAddon struct {
	ID       string `db:"id" json:"id"`
	TeamID   string `db:"team_id" json:"teamId"`
	AddonID  string `db:"addon_id" json:"addonId"`
	Quantity int    `db:"quantity" json:"quantity"`

	types.BaseModel
}
