package contractoverride

import (
	"encoding/json"

	"github.com/flexprice/billing-engine/internal/types"
)

// ContractOverride overrides one BundleMeterPolicy for a (contract, app,
// meterKey) triple. Every policy field is nullable: a present field
// replaces the bundle default, a null field inherits it.
type ContractOverride struct {
	ID             string               `db:"id" json:"id"`
	ContractID     string               `db:"contract_id" json:"contractId"`
	AppID          string               `db:"app_id" json:"appId"`
	MeterKey       string               `db:"meter_key" json:"meterKey"`
	LimitType      *types.LimitType     `db:"limit_type" json:"limitType,omitempty"`
	IncludedAmount *int64               `db:"included_amount" json:"includedAmount,omitempty"`
	Enforcement    *types.Enforcement   `db:"enforcement" json:"enforcement,omitempty"`
	OverageBilling *types.OverageBilling `db:"overage_billing" json:"overageBilling,omitempty"`
	FeatureFlags   json.RawMessage      `db:"feature_flags" json:"featureFlags,omitempty"`
}

// Flags decodes FeatureFlags into a map.
func (o *ContractOverride) Flags() (map[string]bool, error) {
	if len(o.FeatureFlags) == 0 {
		return map[string]bool{}, nil
	}
	var flags map[string]bool
	if err := json.Unmarshal(o.FeatureFlags, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}
