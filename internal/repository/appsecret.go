package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/appsecret"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type appSecretRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewAppSecretRepository builds a sqlx-backed appsecret.Repository.
func NewAppSecretRepository(db *postgres.DB, log *logger.Logger) appsecret.Repository {
	return &appSecretRepository{db: db, log: log}
}

func (r *appSecretRepository) Create(ctx context.Context, s *appsecret.AppSecret) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO app_secrets (kid, app_id, secret_ciphertext, status, revoked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.KID, s.AppID, s.SecretCiphertext, s.Status, s.RevokedAt, s.CreatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("create app secret").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *appSecretRepository) GetByKID(ctx context.Context, kid string) (*appsecret.AppSecret, error) {
	q := r.db.GetQuerier(ctx)
	var s appsecret.AppSecret
	err := q.GetContext(ctx, &s, `
		SELECT kid, app_id, secret_ciphertext, status, revoked_at, created_at
		FROM app_secrets WHERE kid = $1`, kid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appsecret.ErrNotFound(kid)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get app secret").Mark(ierr.ErrSystem)
	}
	return &s, nil
}

func (r *appSecretRepository) ListByAppID(ctx context.Context, appID string) ([]*appsecret.AppSecret, error) {
	q := r.db.GetQuerier(ctx)
	var secrets []*appsecret.AppSecret
	err := q.SelectContext(ctx, &secrets, `
		SELECT kid, app_id, secret_ciphertext, status, revoked_at, created_at
		FROM app_secrets WHERE app_id = $1 ORDER BY created_at DESC`, appID)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("list app secrets").Mark(ierr.ErrSystem)
	}
	return secrets, nil
}

func (r *appSecretRepository) Revoke(ctx context.Context, kid string) error {
	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE app_secrets SET status = 'REVOKED', revoked_at = now() WHERE kid = $1`, kid)
	if err != nil {
		return ierr.WithError(err).WithMessage("revoke app secret").Mark(ierr.ErrSystem)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appsecret.ErrNotFound(kid)
	}
	return nil
}
