package clickhouse

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
)

// InsertUsageEvent mirrors one accepted UsageEvent into ClickHouse.
// Postgres remains the system of record; this mirror exists purely so a
// future aggregateUsage can run against a columnar store at scale instead
// of against the row store.
func (s *ClickHouseStore) InsertUsageEvent(ctx context.Context, e *usageevent.UsageEvent) error {
	conn := s.GetConn()
	err := conn.Exec(ctx, `
		INSERT INTO usage_events_mirror
			(id, app_id, team_id, bill_to_id, event_type, timestamp, idempotency_key, payload, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AppID, e.TeamID, e.BillToID, e.EventType, e.Timestamp, e.IdempotencyKey, string(e.Payload), e.Source,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("mirror usage event to clickhouse").Mark(ierr.ErrSystem)
	}
	return nil
}
