package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/teamaddon"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type teamAddonRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewTeamAddonRepository builds a sqlx-backed teamaddon.Repository.
func NewTeamAddonRepository(db *postgres.DB, log *logger.Logger) teamaddon.Repository {
	return &teamAddonRepository{db: db, log: log}
}

func (r *teamAddonRepository) Create(ctx context.Context, t *teamaddon.TeamAddon) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO team_addons (id, team_id, addon_id, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.TeamID, t.AddonID, t.Quantity, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create team addon").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *teamAddonRepository) ListByTeam(ctx context.Context, teamID string) ([]*teamaddon.TeamAddon, error) {
	q := r.db.GetQuerier(ctx)
	var addons []*teamaddon.TeamAddon
	err := q.SelectContext(ctx, &addons, `
		SELECT id, team_id, addon_id, quantity, status, created_at, updated_at
		FROM team_addons WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list team addons").Mark(ierr.ErrSystem)
	}
	return addons, nil
}
