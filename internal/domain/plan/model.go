package plan

import "github.com/flexprice/billing-engine/internal/types"

// Plan is a per-app subscription tier. (AppID, Code) is unique.
type Plan struct {
	ID   string `db:"id" json:"id"`
	AppID string `db:"app_id" json:"appId"`
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`

	types.BaseModel
}
