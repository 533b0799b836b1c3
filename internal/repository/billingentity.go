package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type billingEntityRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewBillingEntityRepository builds a sqlx-backed billingentity.Repository.
func NewBillingEntityRepository(db *postgres.DB, log *logger.Logger) billingentity.Repository {
	return &billingEntityRepository{db: db, log: log}
}

func (r *billingEntityRepository) Create(ctx context.Context, b *billingentity.BillingEntity) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO billing_entities (id, type, team_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Type, b.TeamID, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create billing entity").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *billingEntityRepository) Get(ctx context.Context, id string) (*billingentity.BillingEntity, error) {
	q := r.db.GetQuerier(ctx)
	var b billingentity.BillingEntity
	err := q.GetContext(ctx, &b, `
		SELECT id, type, team_id, status, created_at, updated_at
		FROM billing_entities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, billingentity.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get billing entity").Mark(ierr.ErrSystem)
	}
	return &b, nil
}

func (r *billingEntityRepository) GetByTeamID(ctx context.Context, teamID string) (*billingentity.BillingEntity, error) {
	q := r.db.GetQuerier(ctx)
	var b billingentity.BillingEntity
	err := q.GetContext(ctx, &b, `
		SELECT id, type, team_id, status, created_at, updated_at
		FROM billing_entities WHERE team_id = $1`, teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, billingentity.ErrNotFound(teamID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get billing entity by team").Mark(ierr.ErrSystem)
	}
	return &b, nil
}
