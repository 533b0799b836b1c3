package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/walletconfig"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type walletConfigRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewWalletConfigRepository builds a sqlx-backed walletconfig.Repository.
func NewWalletConfigRepository(db *postgres.DB, log *logger.Logger) walletconfig.Repository {
	return &walletConfigRepository{db: db, log: log}
}

func (r *walletConfigRepository) Get(ctx context.Context, teamID, appID string) (*walletconfig.WalletConfig, error) {
	q := r.db.GetQuerier(ctx)
	var c walletconfig.WalletConfig
	err := q.GetContext(ctx, &c, `
		SELECT team_id, app_id, auto_top_up_enabled, threshold_minor, top_up_amount_minor, currency
		FROM wallet_configs WHERE team_id = $1 AND app_id = $2`, teamID, appID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("wallet config not found: team=%s app=%s", teamID, appID).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get wallet config").Mark(ierr.ErrSystem)
	}
	return &c, nil
}

func (r *walletConfigRepository) Upsert(ctx context.Context, c *walletconfig.WalletConfig) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO wallet_configs (team_id, app_id, auto_top_up_enabled, threshold_minor, top_up_amount_minor, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (team_id, app_id) DO UPDATE SET
			auto_top_up_enabled = excluded.auto_top_up_enabled,
			threshold_minor = excluded.threshold_minor,
			top_up_amount_minor = excluded.top_up_amount_minor,
			currency = excluded.currency`,
		c.TeamID, c.AppID, c.AutoTopUpEnabled, c.ThresholdMinor, c.TopUpAmountMinor, c.Currency,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("upsert wallet config").Mark(ierr.ErrSystem)
	}
	return nil
}
