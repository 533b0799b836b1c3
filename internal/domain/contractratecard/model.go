package contractratecard

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// ContractRateCard overlays an app-scoped PriceBook with contract-scoped
// pricing for the duration of the enterprise agreement.
type ContractRateCard struct {
	ID            string               `db:"id" json:"id"`
	ContractID    string               `db:"contract_id" json:"contractId"`
	Kind          types.PriceBookKind  `db:"kind" json:"kind"`
	EffectiveFrom time.Time            `db:"effective_from" json:"effectiveFrom"`
	EffectiveTo   *time.Time           `db:"effective_to" json:"effectiveTo,omitempty"`
}
