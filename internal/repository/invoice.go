package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/invoice"
	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type invoiceRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewInvoiceRepository builds a sqlx-backed invoice.Repository.
func NewInvoiceRepository(db *postgres.DB, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, log: log}
}

// CreateWithLineItems persists the invoice and every line item in one
// transaction, per §4.V step 4.
func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice, items []*invoicelineitem.InvoiceLineItem) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)
		_, err := q.ExecContext(ctx, `
			INSERT INTO invoices
				(id, bill_to_id, contract_id, period_start, period_end, status,
				 subtotal_minor, tax_minor, total_minor, external_ref, issued_at, due_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			inv.ID, inv.BillToID, inv.ContractID, inv.PeriodStart, inv.PeriodEnd, inv.Status,
			inv.SubtotalMinor, inv.TaxMinor, inv.TotalMinor, inv.ExternalRef, inv.IssuedAt, inv.DueAt,
		)
		if err != nil {
			return ierr.WithError(err).WithMessage("create invoice").Mark(ierr.ErrSystem)
		}

		for _, item := range items {
			_, err := q.ExecContext(ctx, `
				INSERT INTO invoice_line_items
					(id, invoice_id, app_id, type, description, quantity,
					 unit_price_minor, amount_minor, usage_summary)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				item.ID, item.InvoiceID, item.AppID, item.Type, item.Description,
				item.Quantity, item.UnitPriceMinor, item.AmountMinor, item.UsageSummary,
			)
			if err != nil {
				return ierr.WithError(err).WithMessage("create invoice line item").Mark(ierr.ErrSystem)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	var inv invoice.Invoice
	err := q.GetContext(ctx, &inv, `
		SELECT id, bill_to_id, contract_id, period_start, period_end, status,
			subtotal_minor, tax_minor, total_minor, external_ref, issued_at, due_at
		FROM invoices WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invoice.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get invoice").Mark(ierr.ErrSystem)
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByPeriod(ctx context.Context, contractID string, periodStart, periodEnd time.Time) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	var inv invoice.Invoice
	err := q.GetContext(ctx, &inv, `
		SELECT id, bill_to_id, contract_id, period_start, period_end, status,
			subtotal_minor, tax_minor, total_minor, external_ref, issued_at, due_at
		FROM invoices WHERE contract_id = $1 AND period_start = $2 AND period_end = $3`,
		contractID, periodStart, periodEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get invoice by period").Mark(ierr.ErrSystem)
	}
	return &inv, nil
}

func (r *invoiceRepository) GetLatestByContractID(ctx context.Context, contractID string) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	var inv invoice.Invoice
	err := q.GetContext(ctx, &inv, `
		SELECT id, bill_to_id, contract_id, period_start, period_end, status,
			subtotal_minor, tax_minor, total_minor, external_ref, issued_at, due_at
		FROM invoices WHERE contract_id = $1 ORDER BY period_end DESC LIMIT 1`, contractID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get latest invoice").Mark(ierr.ErrSystem)
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE invoices SET status = $2, external_ref = $3, issued_at = $4, due_at = $5
		WHERE id = $1`,
		inv.ID, inv.Status, inv.ExternalRef, inv.IssuedAt, inv.DueAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("update invoice").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invoice.ErrNotFound(inv.ID)
	}
	return nil
}

func (r *invoiceRepository) ListLineItems(ctx context.Context, invoiceID string) ([]*invoicelineitem.InvoiceLineItem, error) {
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
