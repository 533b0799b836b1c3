package invoice

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
)

// Repository defines persistence operations for Invoice.
type Repository interface {
	// CreateWithLineItems persists the invoice and every InvoiceLineItem
	// atomically in one transaction, per §4.V step 4.
	CreateWithLineItems(ctx context.Context, inv *Invoice, items []*invoicelineitem.InvoiceLineItem) error
	Get(ctx context.Context, id string) (*Invoice, error)
	GetByPeriod(ctx context.Context, contractID string, periodStart, periodEnd time.Time) (*Invoice, error)
	// GetLatestByContractID returns the most recently closed invoice for a
	// contract, whose PeriodEnd anchors the next period's start. Returns
	// nil, nil if the contract has never been invoiced.
	GetLatestByContractID(ctx context.Context, contractID string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	ListLineItems(ctx context.Context, invoiceID string) ([]*invoicelineitem.InvoiceLineItem, error)
}
