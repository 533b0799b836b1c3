package service

import (
	"testing"

	"github.com/flexprice/billing-engine/internal/domain/bundlemeterpolicy"
	"github.com/flexprice/billing-engine/internal/domain/contractoverride"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeMeterPolicies_FullOverride covers §8 scenario 2: a full
// override replaces every field of the bundle's default policy.
func TestMergeMeterPolicies_FullOverride(t *testing.T) {
	policies := []*bundlemeterpolicy.BundleMeterPolicy{
		{
			MeterKey:       "llm.tokens.in",
			LimitType:      types.LimitTypeIncluded,
			IncludedAmount: lo.ToPtr(int64(1_000_000)),
			Enforcement:    types.EnforcementSoft,
			OverageBilling: types.OverageBillingPerUnit,
		},
	}
	overrides := []*contractoverride.ContractOverride{
		{
			MeterKey:       "llm.tokens.in",
			LimitType:      lo.ToPtr(types.LimitTypeHardCap),
			IncludedAmount: lo.ToPtr(int64(5_000_000)),
			Enforcement:    lo.ToPtr(types.EnforcementHard),
			OverageBilling: lo.ToPtr(types.OverageBillingTiered),
		},
	}

	result, err := mergeMeterPolicies(policies, overrides)
	require.NoError(t, err)

	got := result["llm.tokens.in"]
	assert.Equal(t, types.LimitTypeHardCap, got.LimitType)
	assert.Equal(t, int64(5_000_000), *got.IncludedAmount)
	assert.Equal(t, types.EnforcementHard, got.Enforcement)
	assert.Equal(t, types.OverageBillingTiered, got.OverageBilling)
}

// TestMergeMeterPolicies_PartialOverride asserts unset override fields
// inherit the bundle default instead of zeroing out.
func TestMergeMeterPolicies_PartialOverride(t *testing.T) {
	policies := []*bundlemeterpolicy.BundleMeterPolicy{
		{
			MeterKey:       "llm.tokens.in",
			LimitType:      types.LimitTypeIncluded,
			IncludedAmount: lo.ToPtr(int64(1_000_000)),
			Enforcement:    types.EnforcementSoft,
			OverageBilling: types.OverageBillingPerUnit,
		},
	}
	overrides := []*contractoverride.ContractOverride{
		{
			MeterKey:  "llm.tokens.in",
			LimitType: lo.ToPtr(types.LimitTypeUnlim),
		},
	}

	result, err := mergeMeterPolicies(policies, overrides)
	require.NoError(t, err)

	got := result["llm.tokens.in"]
	assert.Equal(t, types.LimitTypeUnlim, got.LimitType)
	assert.Equal(t, int64(1_000_000), *got.IncludedAmount)
	assert.Equal(t, types.EnforcementSoft, got.Enforcement)
	assert.Equal(t, types.OverageBillingPerUnit, got.OverageBilling)
}

// TestMergeMeterPolicies_OverrideOnlyKey covers an override whose meter key
// has no matching bundle policy: it starts from the NONE default instead
// of erroring.
func TestMergeMeterPolicies_OverrideOnlyKey(t *testing.T) {
	overrides := []*contractoverride.ContractOverride{
		{MeterKey: "storage.bytes", LimitType: lo.ToPtr(types.LimitTypeUnlim)},
	}

	result, err := mergeMeterPolicies(nil, overrides)
	require.NoError(t, err)

	got := result["storage.bytes"]
	assert.Equal(t, types.LimitTypeUnlim, got.LimitType)
	assert.Equal(t, types.EnforcementNone, got.Enforcement)
	assert.Equal(t, types.OverageBillingNone, got.OverageBilling)
}
