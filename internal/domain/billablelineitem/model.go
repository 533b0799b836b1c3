package billablelineitem

import (
	"encoding/json"
	"time"
)

// BillableLineItem is the priced projection of one (UsageEvent, PriceBook,
// PriceRule) triple. The pricing engine produces exactly two per event: one
// COGS, one CUSTOMER.
type BillableLineItem struct {
	ID              string          `db:"id" json:"id"`
	AppID           string          `db:"app_id" json:"appId"`
	TeamID          string          `db:"team_id" json:"teamId"`
	BillToID        string          `db:"bill_to_id" json:"billToId"`
	UsageEventID    string          `db:"usage_event_id" json:"usageEventId"`
	PriceBookID     string          `db:"price_book_id" json:"priceBookId"`
	PriceRuleID     string          `db:"price_rule_id" json:"priceRuleId"`
	AmountMinor     int64           `db:"amount_minor" json:"amountMinor"`
	Currency        string          `db:"currency" json:"currency"`
	InputsSnapshot  json.RawMessage `db:"inputs_snapshot" json:"inputsSnapshot"`
	WalletDebitedAt *time.Time      `db:"wallet_debited_at" json:"walletDebitedAt,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}
