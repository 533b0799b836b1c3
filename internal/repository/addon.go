package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/addon"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type addonRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewAddonRepository builds a sqlx-backed addon.Repository.
func NewAddonRepository(db *postgres.DB, log *logger.Logger) addon.Repository {
	return &addonRepository{db: db, log: log}
}

func (r *addonRepository) Create(ctx context.Context, a *addon.Addon) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO addons (id, app_id, code, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.AppID, a.Code, a.Name, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create addon").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *addonRepository) Get(ctx context.Context, id string) (*addon.Addon, error) {
	q := r.db.GetQuerier(ctx)
	var a addon.Addon
	err := q.GetContext(ctx, &a, `
		SELECT id, app_id, code, name, status, created_at, updated_at
		FROM addons WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("addon not found: %s", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get addon").Mark(ierr.ErrSystem)
	}
	return &a, nil
}
