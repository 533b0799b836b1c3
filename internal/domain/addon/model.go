package addon

import "github.com/flexprice/billing-engine/internal/types"

// Addon is an optional per-app add-on that a team can attach via TeamAddon.
type Addon struct {
	ID    string `db:"id" json:"id"`
	AppID string `db:"app_id" json:"appId"`
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`

	types.BaseModel
}
