package invoicelineitem

import (
	"encoding/json"

	"github.com/flexprice/billing-engine/internal/types"
)

// InvoiceLineItem is one charge or credit within an Invoice.
type InvoiceLineItem struct {
	ID             string                      `db:"id" json:"id"`
	InvoiceID      string                      `db:"invoice_id" json:"invoiceId"`
	AppID          *string                     `db:"app_id" json:"appId,omitempty"`
	Type           types.InvoiceLineItemType   `db:"type" json:"type"`
	Description    string                      `db:"description" json:"description"`
	Quantity       int64                       `db:"quantity" json:"quantity"`
	UnitPriceMinor int64                       `db:"unit_price_minor" json:"unitPriceMinor"`
	AmountMinor    int64                       `db:"amount_minor" json:"amountMinor"`
	UsageSummary   json.RawMessage             `db:"usage_summary" json:"usageSummary,omitempty"`
}
