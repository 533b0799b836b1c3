package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/contract"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type contractRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewContractRepository builds a sqlx-backed contract.Repository.
func NewContractRepository(db *postgres.DB, log *logger.Logger) contract.Repository {
	return &contractRepository{db: db, log: log}
}

// Create relies on the partial unique index on (bill_to_id) WHERE
// status='ACTIVE' to enforce at most one Active contract per bill-to.
func (r *contractRepository) Create(ctx context.Context, c *contract.Contract) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO contracts
			(id, bill_to_id, bundle_id, status, currency, billing_period,
			 terms_days, pricing_mode, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.BillToID, c.BundleID, c.Status, c.Currency, c.BillingPeriod,
		c.TermsDays, c.PricingMode, c.StartsAt, c.EndsAt, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return contract.ErrActiveContractExists(c.BillToID)
	}
	if err != nil {
		return ierr.WithError(err).WithMessage("create contract").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	q := r.db.GetQuerier(ctx)
	var c contract.Contract
	err := q.GetContext(ctx, &c, `
		SELECT id, bill_to_id, bundle_id, status, currency, billing_period,
			terms_days, pricing_mode, starts_at, ends_at, created_at, updated_at
		FROM contracts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get contract").Mark(ierr.ErrSystem)
	}
	return &c, nil
}

func (r *contractRepository) GetActiveByBillToID(ctx context.Context, billToID string) (*contract.Contract, error) {
	q := r.db.GetQuerier(ctx)
	var c contract.Contract
	err := q.GetContext(ctx, &c, `
		SELECT id, bill_to_id, bundle_id, status, currency, billing_period,
			terms_days, pricing_mode, starts_at, ends_at, created_at, updated_at
		FROM contracts WHERE bill_to_id = $1 AND status = 'ACTIVE'`, billToID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contract.ErrNotFound(billToID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get active contract").Mark(ierr.ErrSystem)
	}
	return &c, nil
}

func (r *contractRepository) Update(ctx context.Context, c *contract.Contract) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE contracts SET status = $2, ends_at = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Status, c.EndsAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return contract.ErrActiveContractExists(c.BillToID)
	}
	if err != nil {
		return ierr.WithError(err).WithMessage("update contract").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return contract.ErrNotFound(c.ID)
	}
	return nil
}

func (r *contractRepository) ListActive(ctx context.Context) ([]*contract.Contract, error) {
	q := r.db.GetQuerier(ctx)
	var contracts []*contract.Contract
	err := q.SelectContext(ctx, &contracts, `
		SELECT id, bill_to_id, bundle_id, status, currency, billing_period,
			terms_days, pricing_mode, starts_at, ends_at, created_at, updated_at
		FROM contracts WHERE status = 'ACTIVE'`)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list active contracts").Mark(ierr.ErrSystem)
	}
	return contracts, nil
}
