package bundle

import "github.com/flexprice/billing-engine/internal/types"

// Bundle groups many apps under one enterprise template, used by a
// Contract to resolve entitlements across every app it covers.
type Bundle struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	types.BaseModel
}
