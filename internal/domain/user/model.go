package user

import "github.com/flexprice/billing-engine/internal/types"

// User is identified by the (AppID, ExternalRef) unique pair; ID is the
// internal identifier used by every other domain.
type User struct {
	ID          string `db:"id" json:"id"`
	AppID       string `db:"app_id" json:"appId"`
	ExternalRef string `db:"external_ref" json:"externalRef"`
	Email       string `db:"email" json:"email"`

	types.BaseModel
}
