package invoice

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// Invoice is exactly one per (ContractID, PeriodStart, PeriodEnd).
// Invariant: TotalMinor = SubtotalMinor + TaxMinor.
type Invoice struct {
	ID            string               `db:"id" json:"id"`
	BillToID      string               `db:"bill_to_id" json:"billToId"`
	ContractID    *string              `db:"contract_id" json:"contractId,omitempty"`
	PeriodStart   time.Time            `db:"period_start" json:"periodStart"`
	PeriodEnd     time.Time            `db:"period_end" json:"periodEnd"`
	Status        types.InvoiceStatus  `db:"status" json:"status"`
	SubtotalMinor int64                `db:"subtotal_minor" json:"subtotalMinor"`
	TaxMinor      int64                `db:"tax_minor" json:"taxMinor"`
	TotalMinor    int64                `db:"total_minor" json:"totalMinor"`
	ExternalRef   *string              `db:"external_ref" json:"externalRef,omitempty"`
	IssuedAt      *time.Time           `db:"issued_at" json:"issuedAt,omitempty"`
	DueAt         *time.Time           `db:"due_at" json:"dueAt,omitempty"`
}
