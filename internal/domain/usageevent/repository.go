package usageevent

import (
	"context"
	"time"
)

// Repository defines persistence operations for UsageEvent.
type Repository interface {
	// Create inserts the event. Returns true, nil when the insert
	// succeeded; false, nil on a (appId, idempotencyKey) unique-violation
	// (a duplicate, not an error per §4.I step 5); any other failure
	// propagates as an error.
	Create(ctx context.Context, e *UsageEvent) (created bool, err error)
	Get(ctx context.Context, id string) (*UsageEvent, error)
	// AggregateUsage sums BillableLineItem amounts and counts events
	// grouped by (appId, meterKey) for billToId over [start, end), scoped
	// to CUSTOMER price books, per §4.V step 2.
	AggregateUsage(ctx context.Context, billToID string, start, end time.Time) ([]UsageAggregate, error)
}

// UsageAggregate is one (appId, meterKey) group's totals for a closed
// billing period.
type UsageAggregate struct {
	AppID            string `db:"app_id"`
	MeterKey         string `db:"meter_key"`
	TotalAmountMinor int64  `db:"total_amount_minor"`
	EventCount       int    `db:"event_count"`
}
