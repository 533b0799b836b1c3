package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/bundleapp"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type bundleAppRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewBundleAppRepository builds a sqlx-backed bundleapp.Repository.
func NewBundleAppRepository(db *postgres.DB, log *logger.Logger) bundleapp.Repository {
	return &bundleAppRepository{db: db, log: log}
}

func (r *bundleAppRepository) Create(ctx context.Context, b *bundleapp.BundleApp) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO bundle_apps (id, bundle_id, app_id, default_feature_flags)
		VALUES ($1, $2, $3, $4)`,
		b.ID, b.BundleID, b.AppID, b.DefaultFeatureFlags,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create bundle app").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *bundleAppRepository) ListByBundleID(ctx context.Context, bundleID string) ([]*bundleapp.BundleApp, error) {
	q := r.db.GetQuerier(ctx)
	var apps []*bundleapp.BundleApp
	err := q.SelectContext(ctx, &apps, `
		SELECT id, bundle_id, app_id, default_feature_flags
		FROM bundle_apps WHERE bundle_id = $1`, bundleID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list bundle apps").Mark(ierr.ErrSystem)
	}
	return apps, nil
}

func (r *bundleAppRepository) GetByBundleAndAppID(ctx context.Context, bundleID, appID string) (*bundleapp.BundleApp, error) {
	q := r.db.GetQuerier(ctx)
	var b bundleapp.BundleApp
	err := q.GetContext(ctx, &b, `
		SELECT id, bundle_id, app_id, default_feature_flags
		FROM bundle_apps WHERE bundle_id = $1 AND app_id = $2`, bundleID, appID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("bundle app not found: bundle=%s app=%s", bundleID, appID).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get bundle app").Mark(ierr.ErrSystem)
	}
	return &b, nil
}
