package repository

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/jtiusage"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type jtiUsageRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewJtiUsageRepository builds a sqlx-backed jtiusage.Repository.
func NewJtiUsageRepository(db *postgres.DB, log *logger.Logger) jtiusage.Repository {
	return &jtiUsageRepository{db: db, log: log}
}

// Insert records jti as spent. The unique index on jti is the sole
// replay-protection point, per §4.A step 6.
func (r *jtiUsageRepository) Insert(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO jti_usages (jti, expires_at) VALUES ($1, $2)`, jti, expiresAt)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, ierr.WithError(err).WithMessage("insert jti usage").Mark(ierr.ErrSystem)
	}
	return true, nil
}
