package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/bundle"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type bundleRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewBundleRepository builds a sqlx-backed bundle.Repository.
func NewBundleRepository(db *postgres.DB, log *logger.Logger) bundle.Repository {
	return &bundleRepository{db: db, log: log}
}

func (r *bundleRepository) Create(ctx context.Context, b *bundle.Bundle) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO bundles (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create bundle").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *bundleRepository) Get(ctx context.Context, id string) (*bundle.Bundle, error) {
	q := r.db.GetQuerier(ctx)
	var b bundle.Bundle
	err := q.GetContext(ctx, &b, `
		SELECT id, name, status, created_at, updated_at FROM bundles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bundle.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get bundle").Mark(ierr.ErrSystem)
	}
	return &b, nil
}
