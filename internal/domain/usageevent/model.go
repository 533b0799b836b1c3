package usageevent

import (
	"encoding/json"
	"regexp"
	"time"
)

// EventTypePattern is the shape every eventType must match, per §3:
// dot-separated lowercase segments ending in a version suffix.
var EventTypePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9]*)*\.v\d+$`)

// UsageEvent is an immutable raw ingestion record. Unique on
// (AppID, IdempotencyKey).
type UsageEvent struct {
	ID             string          `db:"id" json:"id"`
	AppID          string          `db:"app_id" json:"appId"`
	TeamID         string          `db:"team_id" json:"teamId"`
	BillToID       string          `db:"bill_to_id" json:"billToId"`
	UserID         *string         `db:"user_id" json:"userId,omitempty"`
	EventType      string          `db:"event_type" json:"eventType"`
	Timestamp      time.Time       `db:"timestamp" json:"timestamp"`
	IdempotencyKey string          `db:"idempotency_key" json:"idempotencyKey"`
	Payload        json.RawMessage `db:"payload" json:"payload"`
	Source         string          `db:"source" json:"source"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}

// PayloadMap decodes Payload into a generic map for rule matching and
// evaluation.
func (e *UsageEvent) PayloadMap() (map[string]any, error) {
	var m map[string]any
	if len(e.Payload) == 0 {
		return map[string]any{}, nil
	}
	if err := json.Unmarshal(e.Payload, &m); err != nil {
		return nil, err
	}
	return m, nil
}
