package pricerule

import (
	"encoding/json"
	"math"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/shopspring/decimal"
)

// PriceRule belongs to a PriceBook. Priority breaks ties between rules
// whose Match maps both satisfy an event (larger wins).
type PriceRule struct {
	ID          string          `db:"id" json:"id"`
	PriceBookID string          `db:"price_book_id" json:"priceBookId"`
	Priority    int             `db:"priority" json:"priority"`
	Match       json.RawMessage `db:"match" json:"match"`
	Rule        json.RawMessage `db:"rule" json:"rule"`
}

// MatchMap decodes Match into a plain string map.
func (r *PriceRule) MatchMap() (map[string]string, error) {
	var m map[string]string
	if len(r.Match) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(r.Match, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Matches reports whether every key in Match is satisfied by eventType and
// payload, per §4.P's rule-matching step: for key "eventType" the value
// must equal eventType (or be "*"); for any other key the value must equal
// String(payload[key]) (or be "*").
func (r *PriceRule) Matches(eventType string, payload map[string]any) (bool, error) {
	match, err := r.MatchMap()
	if err != nil {
		return false, err
	}
	for key, want := range match {
		if want == "*" {
			continue
		}
		if key == "eventType" {
			if want != eventType {
				return false, nil
			}
			continue
		}
		got, ok := payload[key]
		if !ok || toString(got) != want {
			return false, nil
		}
	}
	return true, nil
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// ruleEnvelope discriminates the stored JSON rule by its "type" field.
type ruleEnvelope struct {
	Type types.PriceRuleType `json:"type"`
}

// FlatRule is `{type:"flat", amount}` — a fixed charge per matching event.
type FlatRule struct {
	Amount decimal.Decimal `json:"amount"`
}

// PerUnitRule is `{type:"per_unit", field, unitPrice}` — charges
// payload[field] × unitPrice.
type PerUnitRule struct {
	Field     string          `json:"field"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Tier is one graduated band of a TieredRule. A nil UpTo absorbs the
// remainder of the quantity.
type Tier struct {
	UpTo      *int64          `json:"upTo"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// TieredRule is `{type:"tiered", field, tiers}` — graduated pricing across
// Tiers, each covering the slice of quantity between the previous and its
// own UpTo boundary.
type TieredRule struct {
	Field string `json:"field"`
	Tiers []Tier `json:"tiers"`
}

// Evaluation decodes Rule's discriminated union and evaluates it against
// payload, per §4.P step 3. Returns the computed amount in minor units
// (rounded) plus the evaluation detail to snapshot for audit.
func (r *PriceRule) Evaluation(payload map[string]any) (amountMinor int64, snapshot map[string]any, err error) {
	var env ruleEnvelope
	if err := json.Unmarshal(r.Rule, &env); err != nil {
		return 0, nil, ierr.WithError(err).WithMessage("decode rule envelope").Mark(ierr.ErrSystem)
	}

	switch env.Type {
	case types.PriceRuleTypeFlat:
		var flat FlatRule
		if err := json.Unmarshal(r.Rule, &flat); err != nil {
			return 0, nil, ierr.WithError(err).WithMessage("decode flat rule").Mark(ierr.ErrSystem)
		}
		amountMinor = roundMinor(flat.Amount)
		snapshot = map[string]any{
			"ruleType":      types.PriceRuleTypeFlat,
			"computedAmount": amountMinor,
			"payload":       payload,
		}
		return amountMinor, snapshot, nil

	case types.PriceRuleTypePerUnit:
		var pu PerUnitRule
		if err := json.Unmarshal(r.Rule, &pu); err != nil {
			return 0, nil, ierr.WithError(err).WithMessage("decode per_unit rule").Mark(ierr.ErrSystem)
		}
		qty, ok := numeric(payload[pu.Field])
		if !ok {
			return 0, nil, ierr.NewErrorf("invalid rule: missing or non-numeric field %q", pu.Field).
				Mark(ierr.ErrSystem)
		}
		amountMinor = roundMinor(qty.Mul(pu.UnitPrice))
		snapshot = map[string]any{
			"ruleType":       types.PriceRuleTypePerUnit,
			"field":          pu.Field,
			"quantity":       qty,
			"unitPrice":      pu.UnitPrice,
			"computedAmount": amountMinor,
			"payload":        payload,
		}
		return amountMinor, snapshot, nil

	case types.PriceRuleTypeTiered:
		var tiered TieredRule
		if err := json.Unmarshal(r.Rule, &tiered); err != nil {
			return 0, nil, ierr.WithError(err).WithMessage("decode tiered rule").Mark(ierr.ErrSystem)
		}
		qty, ok := numeric(payload[tiered.Field])
		if !ok {
			return 0, nil, ierr.NewErrorf("invalid rule: missing or non-numeric field %q", tiered.Field).
				Mark(ierr.ErrSystem)
		}

		remaining := qty
		var prevUpTo int64
		var total int64
		breakdown := make([]map[string]any, 0, len(tiered.Tiers))
		for _, tier := range tiered.Tiers {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			var capacity decimal.Decimal
			if tier.UpTo == nil {
				capacity = remaining
			} else {
				capacity = decimal.NewFromInt(*tier.UpTo - prevUpTo)
				prevUpTo = *tier.UpTo
			}
			take := decimal.Min(remaining, capacity)
			subtotal := roundMinor(take.Mul(tier.UnitPrice))
			total += subtotal
			breakdown = append(breakdown, map[string]any{
				"upTo":      tier.UpTo,
				"unitPrice": tier.UnitPrice,
				"quantity":  take,
				"amount":    subtotal,
			})
			remaining = remaining.Sub(take)
		}
		snapshot = map[string]any{
			"ruleType":       types.PriceRuleTypeTiered,
			"field":          tiered.Field,
			"quantity":       qty,
			"tiers":          breakdown,
			"computedAmount": total,
			"payload":        payload,
		}
		return total, snapshot, nil

	default:
		return 0, nil, ierr.NewErrorf("invalid rule: unknown type %q", env.Type).
			Mark(ierr.ErrSystem)
	}
}

func roundMinor(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func numeric(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
