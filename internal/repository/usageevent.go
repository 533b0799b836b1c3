package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type usageEventRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewUsageEventRepository builds a sqlx-backed usageevent.Repository.
func NewUsageEventRepository(db *postgres.DB, log *logger.Logger) usageevent.Repository {
	return &usageEventRepository{db: db, log: log}
}

// Create swallows a (app_id, idempotency_key) unique-violation into a
// false, nil return — a duplicate send is not an ingestion error.
func (r *usageEventRepository) Create(ctx context.Context, e *usageevent.UsageEvent) (bool, error) {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO usage_events
			(id, app_id, team_id, bill_to_id, user_id, event_type, timestamp,
			 idempotency_key, payload, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.AppID, e.TeamID, e.BillToID, e.UserID, e.EventType, e.Timestamp,
		e.IdempotencyKey, e.Payload, e.Source, e.CreatedAt,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, ierr.WithError(err).WithMessage("create usage event").Mark(ierr.ErrSystem)
	}
	return true, nil
}

func (r *usageEventRepository) Get(ctx context.Context, id string) (*usageevent.UsageEvent, error) {
	q := r.db.GetQuerier(ctx)
	var e usageevent.UsageEvent
	err := q.GetContext(ctx, &e, `
		SELECT id, app_id, team_id, bill_to_id, user_id, event_type, timestamp,
			idempotency_key, payload, source, created_at
		FROM usage_events WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewErrorf("usage event not found: %s", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get usage event").Mark(ierr.ErrSystem)
	}
	return &e, nil
}

// AggregateUsage sums CUSTOMER-book BillableLineItem amounts grouped by
// (appId, meterKey) over [start, end), per §4.V step 2. The meter key is
// recovered from the usage event's eventType, since BillableLineItem
// itself carries only the priced amount.
func (r *usageEventRepository) AggregateUsage(ctx context.Context, billToID string, start, end time.Time) ([]usageevent.UsageAggregate, error) {
	q := r.db.GetQuerier(ctx)
	var rows []usageevent.UsageAggregate
	err := q.SelectContext(ctx, &rows, `
		SELECT bli.app_id AS app_id, ue.event_type AS meter_key,
			sum(bli.amount_minor) AS total_amount_minor, count(*) AS event_count
		FROM billable_line_items bli
		JOIN usage_events ue ON ue.id = bli.usage_event_id
		JOIN price_books pb ON pb.id = bli.price_book_id
		WHERE bli.bill_to_id = $1 AND pb.kind = 'CUSTOMER'
			AND ue.timestamp >= $2 AND ue.timestamp < $3
		GROUP BY bli.app_id, ue.event_type`, billToID, start, end)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("aggregate usage").Mark(ierr.ErrSystem)
	}
	return rows, nil
}
