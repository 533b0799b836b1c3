package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/contractratecard"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type contractRateCardRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewContractRateCardRepository builds a sqlx-backed contractratecard.Repository.
func NewContractRateCardRepository(db *postgres.DB, log *logger.Logger) contractratecard.Repository {
	return &contractRateCardRepository{db: db, log: log}
}

func (r *contractRateCardRepository) Create(ctx context.Context, c *contractratecard.ContractRateCard) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO contract_rate_cards (id, contract_id, kind, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.ContractID, c.Kind, c.EffectiveFrom, c.EffectiveTo,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create contract rate card").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *contractRateCardRepository) GetEffective(ctx context.Context, contractID string, kind string, at time.Time) (*contractratecard.ContractRateCard, error) {
	q := r.db.GetQuerier(ctx)
	var c contractratecard.ContractRateCard
	err := q.GetContext(ctx, &c, `
		SELECT id, contract_id, kind, effective_from, effective_to
		FROM contract_rate_cards
		WHERE contract_id = $1 AND kind = $2 AND effective_from <= $3
			AND (effective_to IS NULL OR effective_to > $3)
		ORDER BY effective_from DESC LIMIT 1`, contractID, kind, at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get effective contract rate card").Mark(ierr.ErrSystem)
	}
	return &c, nil
}
