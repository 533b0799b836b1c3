package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/pricebook"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/flexprice/billing-engine/internal/types"
)

type priceBookRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewPriceBookRepository builds a sqlx-backed pricebook.Repository.
func NewPriceBookRepository(db *postgres.DB, log *logger.Logger) pricebook.Repository {
	return &priceBookRepository{db: db, log: log}
}

func (r *priceBookRepository) Create(ctx context.Context, b *pricebook.PriceBook) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO price_books (id, app_id, kind, version, currency, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.AppID, b.Kind, b.Version, b.Currency, b.EffectiveFrom, b.EffectiveTo,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create price book").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *priceBookRepository) Get(ctx context.Context, id string) (*pricebook.PriceBook, error) {
	q := r.db.GetQuerier(ctx)
	var b pricebook.PriceBook
	err := q.GetContext(ctx, &b, `
		SELECT id, app_id, kind, version, currency, effective_from, effective_to
		FROM price_books WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("price book not found: %s", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get price book").Mark(ierr.ErrSystem)
	}
	return &b, nil
}

// Selected picks the highest-version book of kind whose effective window
// contains at, per §4.P's book selection step.
func (r *priceBookRepository) Selected(ctx context.Context, appID string, kind types.PriceBookKind, at time.Time) (*pricebook.PriceBook, error) {
	q := r.db.GetQuerier(ctx)
	var b pricebook.PriceBook
	err := q.GetContext(ctx, &b, `
		SELECT id, app_id, kind, version, currency, effective_from, effective_to
		FROM price_books
		WHERE app_id = $1 AND kind = $2 AND effective_from <= $3
			AND (effective_to IS NULL OR effective_to > $3)
		ORDER BY version DESC LIMIT 1`, appID, kind, at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("select price book").Mark(ierr.ErrSystem)
	}
	return &b, nil
}
