package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type invoiceLineItemRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewInvoiceLineItemRepository builds a sqlx-backed invoicelineitem.Repository.
func NewInvoiceLineItemRepository(db *postgres.DB, log *logger.Logger) invoicelineitem.Repository {
	return &invoiceLineItemRepository{db: db, log: log}
}

func (r *invoiceLineItemRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]*invoicelineitem.InvoiceLineItem, error) {
	q := r.db.GetQuerier(ctx)
	var items []*invoicelineitem.InvoiceLineItem
	err := q.SelectContext(ctx, &items, `
		SELECT id, invoice_id, app_id, type, description, quantity,
			unit_price_minor, amount_minor, usage_summary
		FROM invoice_line_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list invoice line items").Mark(ierr.ErrSystem)
	}
	return items, nil
}
