package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/teammember"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type teamMemberRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewTeamMemberRepository builds a sqlx-backed teammember.Repository.
func NewTeamMemberRepository(db *postgres.DB, log *logger.Logger) teammember.Repository {
	return &teamMemberRepository{db: db, log: log}
}

func (r *teamMemberRepository) Create(ctx context.Context, m *teammember.TeamMember) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO team_members (id, team_id, user_id, role, status, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.TeamID, m.UserID, m.Role, m.Status, m.StartedAt, m.EndedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create team member").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *teamMemberRepository) Get(ctx context.Context, teamID, userID string) (*teammember.TeamMember, error) {
	q := r.db.GetQuerier(ctx)
	var m teammember.TeamMember
	err := q.GetContext(ctx, &m, `
		SELECT id, team_id, user_id, role, status, started_at, ended_at
		FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, teammember.ErrNotFound(teamID, userID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get team member").Mark(ierr.ErrSystem)
	}
	return &m, nil
}

// Reactivate flips a Removed member back to Active and clears EndedAt,
// rather than inserting a second row for the same (team, user) pair.
func (r *teamMemberRepository) Reactivate(ctx context.Context, teamID, userID string) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE team_members SET status = 'ACTIVE', ended_at = NULL, started_at = now()
		WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return ierr.WithError(err).WithMessage("reactivate team member").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teammember.ErrNotFound(teamID, userID)
	}
	return nil
}

func (r *teamMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]*teammember.TeamMember, error) {
	q := r.db.GetQuerier(ctx)
	var members []*teammember.TeamMember
	err := q.SelectContext(ctx, &members, `
		SELECT id, team_id, user_id, role, status, started_at, ended_at
		FROM team_members WHERE team_id = $1 ORDER BY started_at`, teamID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list team members").Mark(ierr.ErrSystem)
	}
	return members, nil
}
