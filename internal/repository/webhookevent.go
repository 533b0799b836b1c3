package repository

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/webhookevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type webhookEventRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewWebhookEventRepository builds a sqlx-backed webhookevent.Repository.
func NewWebhookEventRepository(db *postgres.DB, log *logger.Logger) webhookevent.Repository {
	return &webhookEventRepository{db: db, log: log}
}

// Record dedups Stripe callbacks on EventID, per §4.W step 1.
func (r *webhookEventRepository) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO webhook_events (event_id, event_type, processed_at)
		VALUES ($1, $2, now())`, eventID, eventType)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, ierr.WithError(err).WithMessage("record webhook event").Mark(ierr.ErrSystem)
	}
	return true, nil
}
