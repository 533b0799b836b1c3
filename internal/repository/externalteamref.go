package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/externalteamref"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type externalTeamRefRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewExternalTeamRefRepository builds a sqlx-backed externalteamref.Repository.
func NewExternalTeamRefRepository(db *postgres.DB, log *logger.Logger) externalteamref.Repository {
	return &externalTeamRefRepository{db: db, log: log}
}

func (r *externalTeamRefRepository) Create(ctx context.Context, ref *externalteamref.ExternalTeamRef) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO external_team_refs (app_id, external_team_id, billing_team_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		ref.AppID, ref.ExternalTeamID, ref.BillingTeamID, ref.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ierr.NewErrorf("external team ref already exists: app=%s externalTeamId=%s",
			ref.AppID, ref.ExternalTeamID).Mark(ierr.ErrAlreadyExists)
	}
	if err != nil {
		return ierr.WithError(err).WithMessage("create external team ref").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *externalTeamRefRepository) Get(ctx context.Context, appID, externalTeamID string) (*externalteamref.ExternalTeamRef, error) {
	q := r.db.GetQuerier(ctx)
	var ref externalteamref.ExternalTeamRef
	err := q.GetContext(ctx, &ref, `
		SELECT app_id, external_team_id, billing_team_id, created_at
		FROM external_team_refs WHERE app_id = $1 AND external_team_id = $2`,
		appID, externalTeamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, externalteamref.ErrNotFound(appID, externalTeamID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get external team ref").Mark(ierr.ErrSystem)
	}
	return &ref, nil
}
