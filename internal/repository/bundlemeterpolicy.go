package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/bundlemeterpolicy"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type bundleMeterPolicyRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewBundleMeterPolicyRepository builds a sqlx-backed bundlemeterpolicy.Repository.
func NewBundleMeterPolicyRepository(db *postgres.DB, log *logger.Logger) bundlemeterpolicy.Repository {
	return &bundleMeterPolicyRepository{db: db, log: log}
}

func (r *bundleMeterPolicyRepository) Create(ctx context.Context, p *bundlemeterpolicy.BundleMeterPolicy) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO bundle_meter_policies
			(id, bundle_id, app_id, meter_key, limit_type, included_amount, enforcement, overage_billing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.BundleID, p.AppID, p.MeterKey, p.LimitType, p.IncludedAmount, p.Enforcement, p.OverageBilling,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create bundle meter policy").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *bundleMeterPolicyRepository) ListByBundleAndAppID(ctx context.Context, bundleID, appID string) ([]*bundlemeterpolicy.BundleMeterPolicy, error) {
	q := r.db.GetQuerier(ctx)
	var policies []*bundlemeterpolicy.BundleMeterPolicy
	err := q.SelectContext(ctx, &policies, `
		SELECT id, bundle_id, app_id, meter_key, limit_type, included_amount, enforcement, overage_billing
		FROM bundle_meter_policies WHERE bundle_id = $1 AND app_id = $2`, bundleID, appID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list bundle meter policies").Mark(ierr.ErrSystem)
	}
	return policies, nil
}
