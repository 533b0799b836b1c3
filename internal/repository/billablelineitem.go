package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/billablelineitem"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/lib/pq"
)

type billableLineItemRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewBillableLineItemRepository builds a sqlx-backed billablelineitem.Repository.
func NewBillableLineItemRepository(db *postgres.DB, log *logger.Logger) billablelineitem.Repository {
	return &billableLineItemRepository{db: db, log: log}
}

// CreatePair persists the COGS and CUSTOMER projections of one usage event
// atomically, per §4.P step 5.
func (r *billableLineItemRepository) CreatePair(ctx context.Context, cogs, customer *billablelineitem.BillableLineItem) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		for _, item := range []*billablelineitem.BillableLineItem{cogs, customer} {
			q := r.db.GetQuerier(ctx)
			_, err := q.ExecContext(ctx, `
				INSERT INTO billable_line_items
					(id, app_id, team_id, bill_to_id, usage_event_id, price_book_id,
					 price_rule_id, amount_minor, currency, inputs_snapshot, wallet_debited_at, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				item.ID, item.AppID, item.TeamID, item.BillToID, item.UsageEventID,
				item.PriceBookID, item.PriceRuleID, item.AmountMinor, item.Currency,
				item.InputsSnapshot, item.WalletDebitedAt, item.CreatedAt,
			)
			if err != nil {
				return ierr.WithError(err).WithMessage("create billable line item").Mark(ierr.ErrSystem)
			}
		}
		return nil
	})
}

func (r *billableLineItemRepository) Get(ctx context.Context, id string) (*billablelineitem.BillableLineItem, error) {
	q := r.db.GetQuerier(ctx)
	var item billablelineitem.BillableLineItem
	err := q.GetContext(ctx, &item, `
		SELECT id, app_id, team_id, bill_to_id, usage_event_id, price_book_id,
			price_rule_id, amount_minor, currency, inputs_snapshot, wallet_debited_at, created_at
		FROM billable_line_items WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("billable line item not found: %s", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get billable line item").Mark(ierr.ErrSystem)
	}
	return &item, nil
}

func (r *billableLineItemRepository) PriceBookKind(ctx context.Context, id string) (string, error) {
	q := r.db.GetQuerier(ctx)
	var kind string
	err := q.GetContext(ctx, &kind, `
		SELECT pb.kind FROM billable_line_items bli
		JOIN price_books pb ON pb.id = bli.price_book_id
		WHERE bli.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ierr.NewErrorf("billable line item not found: %s", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return "", ierr.WithError(err).WithMessage("get line item price book kind").Mark(ierr.ErrSystem)
	}
	return kind, nil
}

func (r *billableLineItemRepository) MarkWalletDebited(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		UPDATE billable_line_items SET wallet_debited_at = now() WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return ierr.WithError(err).WithMessage("mark wallet debited").Mark(ierr.ErrSystem)
	}
	return nil
}

// ListUndebited returns every CUSTOMER-book line item with no
// WalletDebitedAt, the daily debit sweep's source in §4.D.
func (r *billableLineItemRepository) ListUndebited(ctx context.Context) ([]*billablelineitem.BillableLineItem, error) {
	q := r.db.GetQuerier(ctx)
	var items []*billablelineitem.BillableLineItem
	err := q.SelectContext(ctx, &items, `
		SELECT bli.id, bli.app_id, bli.team_id, bli.bill_to_id, bli.usage_event_id,
			bli.price_book_id, bli.price_rule_id, bli.amount_minor, bli.currency,
			bli.inputs_snapshot, bli.wallet_debited_at, bli.created_at
		FROM billable_line_items bli
		JOIN price_books pb ON pb.id = bli.price_book_id
		WHERE bli.wallet_debited_at IS NULL AND pb.kind = 'CUSTOMER'
		ORDER BY bli.created_at`)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list undebited line items").Mark(ierr.ErrSystem)
	}
	return items, nil
}
