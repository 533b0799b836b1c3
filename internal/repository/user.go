package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/user"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type userRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewUserRepository builds a sqlx-backed user.Repository.
func NewUserRepository(db *postgres.DB, log *logger.Logger) user.Repository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, app_id, external_ref, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.AppID, u.ExternalRef, u.Email, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ierr.NewErrorf("user already exists: app=%s externalRef=%s", u.AppID, u.ExternalRef).
			Mark(ierr.ErrAlreadyExists)
	}
	if err != nil {
		return ierr.WithError(err).WithMessage("create user").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	q := r.db.GetQuerier(ctx)
	var u user.User
	err := q.GetContext(ctx, &u, `
		SELECT id, app_id, external_ref, email, status, created_at, updated_at
		FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound("", id)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get user").Mark(ierr.ErrSystem)
	}
	return &u, nil
}

func (r *userRepository) GetByExternalRef(ctx context.Context, appID, externalRef string) (*user.User, error) {
	q := r.db.GetQuerier(ctx)
	var u user.User
	err := q.GetContext(ctx, &u, `
		SELECT id, app_id, external_ref, email, status, created_at, updated_at
		FROM users WHERE app_id = $1 AND external_ref = $2`, appID, externalRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound(appID, externalRef)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get user by external ref").Mark(ierr.ErrSystem)
	}
	return &u, nil
}
