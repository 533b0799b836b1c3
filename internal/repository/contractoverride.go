package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/contractoverride"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type contractOverrideRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewContractOverrideRepository builds a sqlx-backed contractoverride.Repository.
func NewContractOverrideRepository(db *postgres.DB, log *logger.Logger) contractoverride.Repository {
	return &contractOverrideRepository{db: db, log: log}
}

func (r *contractOverrideRepository) Create(ctx context.Context, o *contractoverride.ContractOverride) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO contract_overrides
			(id, contract_id, app_id, meter_key, limit_type, included_amount,
			 enforcement, overage_billing, feature_flags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.ContractID, o.AppID, o.MeterKey, o.LimitType, o.IncludedAmount,
		o.Enforcement, o.OverageBilling, o.FeatureFlags,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create contract override").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *contractOverrideRepository) ListByContractAndAppID(ctx context.Context, contractID, appID string) ([]*contractoverride.ContractOverride, error) {
	q := r.db.GetQuerier(ctx)
	var overrides []*contractoverride.ContractOverride
	err := q.SelectContext(ctx, &overrides, `
		SELECT id, contract_id, app_id, meter_key, limit_type, included_amount,
			enforcement, overage_billing, feature_flags
		FROM contract_overrides WHERE contract_id = $1 AND app_id = $2`, contractID, appID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list contract overrides").Mark(ierr.ErrSystem)
	}
	return overrides, nil
}
