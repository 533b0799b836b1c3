package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/plan"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type planRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewPlanRepository builds a sqlx-backed plan.Repository.
func NewPlanRepository(db *postgres.DB, log *logger.Logger) plan.Repository {
	return &planRepository{db: db, log: log}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO plans (id, app_id, code, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.AppID, p.Code, p.Name, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create plan").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	q := r.db.GetQuerier(ctx)
	var p plan.Plan
	err := q.GetContext(ctx, &p, `
		SELECT id, app_id, code, name, status, created_at, updated_at
		FROM plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, plan.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get plan").Mark(ierr.ErrSystem)
	}
	return &p, nil
}

func (r *planRepository) GetByCode(ctx context.Context, appID, code string) (*plan.Plan, error) {
	q := r.db.GetQuerier(ctx)
	var p plan.Plan
	err := q.GetContext(ctx, &p, `
		SELECT id, app_id, code, name, status, created_at, updated_at
		FROM plans WHERE app_id = $1 AND code = $2`, appID, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, plan.ErrNotFound(code)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get plan by code").Mark(ierr.ErrSystem)
	}
	return &p, nil
}
