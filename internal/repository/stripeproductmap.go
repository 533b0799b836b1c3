package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/stripeproductmap"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type stripeProductMapRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewStripeProductMapRepository builds a sqlx-backed stripeproductmap.Repository.
func NewStripeProductMapRepository(db *postgres.DB, log *logger.Logger) stripeproductmap.Repository {
	return &stripeProductMapRepository{db: db, log: log}
}

func (r *stripeProductMapRepository) Create(ctx context.Context, m *stripeproductmap.StripeProductMap) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO stripe_product_maps (id, plan_id, kind, stripe_product_id, stripe_price_id)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.PlanID, m.Kind, m.StripeProductID, m.StripePriceID,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create stripe product map").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *stripeProductMapRepository) ListByPlanID(ctx context.Context, planID string) ([]*stripeproductmap.StripeProductMap, error) {
	q := r.db.GetQuerier(ctx)
	var maps []*stripeproductmap.StripeProductMap
	err := q.SelectContext(ctx, &maps, `
		SELECT id, plan_id, kind, stripe_product_id, stripe_price_id
		FROM stripe_product_maps WHERE plan_id = $1`, planID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list stripe product maps").Mark(ierr.ErrSystem)
	}
	return maps, nil
}
