package app

import "github.com/flexprice/billing-engine/internal/types"

// App is a tenant of the billing service. It owns secrets, plans, bundles,
// and price books.
type App struct {
	ID     string          `db:"id" json:"id"`
	Name   string          `db:"name" json:"name"`
	Status types.AppStatus `db:"status" json:"status"`

	types.BaseModel
}
