package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/pricerule"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type priceRuleRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewPriceRuleRepository builds a sqlx-backed pricerule.Repository.
func NewPriceRuleRepository(db *postgres.DB, log *logger.Logger) pricerule.Repository {
	return &priceRuleRepository{db: db, log: log}
}

func (r *priceRuleRepository) Create(ctx context.Context, rule *pricerule.PriceRule) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO price_rules (id, price_book_id, priority, match, rule)
		VALUES ($1, $2, $3, $4, $5)`,
		rule.ID, rule.PriceBookID, rule.Priority, rule.Match, rule.Rule,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create price rule").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *priceRuleRepository) ListByPriceBookID(ctx context.Context, priceBookID string) ([]*pricerule.PriceRule, error) {
	q := r.db.GetQuerier(ctx)
	var rules []*pricerule.PriceRule
	err := q.SelectContext(ctx, &rules, `
		SELECT id, price_book_id, priority, match, rule
		FROM price_rules WHERE price_book_id = $1 ORDER BY priority DESC`, priceBookID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list price rules").Mark(ierr.ErrSystem)
	}
	return rules, nil
}
