package invoicelineitem

import "context"

// Repository defines persistence operations for InvoiceLineItem.
type Repository interface {
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]*InvoiceLineItem, error)
}
