package pricerule

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluation_Tiered covers §8 scenario 1: inputTokens=3000 across
// tiers [0,1000]@0.01, (1000,5000]@0.005, (5000,∞)@0.002 rounds to
// round(1000×0.01) + round(2000×0.005) = 10 + 20*... = 10 + 10 = 20.
func TestEvaluation_Tiered(t *testing.T) {
	rule := newTieredRule(t, "inputTokens", []Tier{
		{UpTo: lo.ToPtr(int64(1000)), UnitPrice: mustDecimal("0.01")},
		{UpTo: lo.ToPtr(int64(5000)), UnitPrice: mustDecimal("0.005")},
		{UpTo: nil, UnitPrice: mustDecimal("0.002")},
	})

	amountMinor, snapshot, err := rule.Evaluation(map[string]any{"inputTokens": 3000.0})
	require.NoError(t, err)
	assert.Equal(t, int64(20), amountMinor)
	assert.NotNil(t, snapshot)
}

func TestEvaluation_Tiered_ExhaustsOpenEndedTier(t *testing.T) {
	rule := newTieredRule(t, "inputTokens", []Tier{
		{UpTo: lo.ToPtr(int64(1000)), UnitPrice: mustDecimal("0.01")},
		{UpTo: nil, UnitPrice: mustDecimal("0.002")},
	})

	amountMinor, _, err := rule.Evaluation(map[string]any{"inputTokens": 6000.0})
	require.NoError(t, err)
	// 1000 @ 0.01 = 10, remaining 5000 @ 0.002 = 10
	assert.Equal(t, int64(20), amountMinor)
}

func TestEvaluation_Tiered_MissingField(t *testing.T) {
	rule := newTieredRule(t, "inputTokens", []Tier{
		{UpTo: nil, UnitPrice: mustDecimal("0.01")},
	})

	_, _, err := rule.Evaluation(map[string]any{})
	assert.Error(t, err)
}

func TestEvaluation_PerUnit(t *testing.T) {
	rule := &PriceRule{
		Rule: mustJSON(t, map[string]any{
			"type":      "per_unit",
			"field":     "outputTokens",
			"unitPrice": "0.002",
		}),
	}

	amountMinor, _, err := rule.Evaluation(map[string]any{"outputTokens": 500.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), amountMinor)
}

func TestMatches_EventTypeAndWildcard(t *testing.T) {
	rule := &PriceRule{
		Match: mustJSON(t, map[string]string{"eventType": "llm.completion", "model": "*"}),
	}

	ok, err := rule.Matches("llm.completion", map[string]any{"model": "gpt-5"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rule.Matches("other.event", map[string]any{"model": "gpt-5"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTieredRule(t *testing.T, field string, tiers []Tier) *PriceRule {
	t.Helper()
	return &PriceRule{
		Rule: mustJSON(t, map[string]any{"type": "tiered", "field": field, "tiers": tiers}),
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
