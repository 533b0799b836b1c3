package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/team"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type teamRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewTeamRepository builds a sqlx-backed team.Repository.
func NewTeamRepository(db *postgres.DB, log *logger.Logger) team.Repository {
	return &teamRepository{db: db, log: log}
}

func (r *teamRepository) Create(ctx context.Context, t *team.Team) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO teams (id, app_id, name, kind, owner_user_id, billing_mode,
			default_currency, external_customer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.AppID, t.Name, t.Kind, t.OwnerUserID, t.BillingMode,
		t.DefaultCurrency, t.ExternalCustomerID, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create team").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *teamRepository) Get(ctx context.Context, id string) (*team.Team, error) {
	q := r.db.GetQuerier(ctx)
	var t team.Team
	err := q.GetContext(ctx, &t, `
		SELECT id, app_id, name, kind, owner_user_id, billing_mode,
			default_currency, external_customer_id, status, created_at, updated_at
		FROM teams WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, team.ErrNotFound(id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get team").Mark(ierr.ErrSystem)
	}
	return &t, nil
}

func (r *teamRepository) GetPersonalTeamByOwner(ctx context.Context, appID, ownerUserID string) (*team.Team, error) {
	q := r.db.GetQuerier(ctx)
	var t team.Team
	err := q.GetContext(ctx, &t, `
		SELECT id, app_id, name, kind, owner_user_id, billing_mode,
			default_currency, external_customer_id, status, created_at, updated_at
		FROM teams WHERE app_id = $1 AND owner_user_id = $2 AND kind = 'PERSONAL'`,
		appID, ownerUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, team.ErrNotFound(ownerUserID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get personal team").Mark(ierr.ErrSystem)
	}
	return &t, nil
}

func (r *teamRepository) Update(ctx context.Context, t *team.Team) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE teams SET name = $2, billing_mode = $3, default_currency = $4,
			status = $5, updated_at = $6
		WHERE id = $1`,
		t.ID, t.Name, t.BillingMode, t.DefaultCurrency, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("update team").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return team.ErrNotFound(t.ID)
	}
	return nil
}

// ClaimExternalCustomer is the compare-and-swap in §4.C: it only succeeds
// when external_customer_id is currently NULL, so exactly one concurrent
// caller wins the race to create the upstream customer.
func (r *teamRepository) ClaimExternalCustomer(ctx context.Context, teamID, pendingID string) (bool, error) {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE teams SET external_customer_id = $2, updated_at = now()
		WHERE id = $1 AND external_customer_id IS NULL`, teamID, pendingID)
	if err != nil {
		return false, ierr.WithError(err).WithMessage("claim external customer").Mark(ierr.ErrSystem)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func (r *teamRepository) SetExternalCustomer(ctx context.Context, teamID, externalCustomerID string) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE teams SET external_customer_id = $2, updated_at = now() WHERE id = $1`,
		teamID, externalCustomerID)
	if err != nil {
		return ierr.WithError(err).WithMessage("set external customer").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return team.ErrNotFound(teamID)
	}
	return nil
}

// RollbackExternalCustomerClaim clears a failed pending claim, guarded by
// the pending value so a concurrent successful claim is never clobbered.
func (r *teamRepository) RollbackExternalCustomerClaim(ctx context.Context, teamID, pendingID string) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		UPDATE teams SET external_customer_id = NULL, updated_at = now()
		WHERE id = $1 AND external_customer_id = $2`, teamID, pendingID)
	if err != nil {
		return ierr.WithError(err).WithMessage("rollback external customer claim").Mark(ierr.ErrSystem)
	}
	return nil
}
