package webhookevent

import "time"

// WebhookEvent is the dedup record for the Stripe callback stream.
// EventID is unique; a second insert for the same ID is the webhook
// reconciler's idempotent-swallow signal.
type WebhookEvent struct {
	EventID     string    `db:"event_id" json:"eventId"`
	EventType   string    `db:"event_type" json:"eventType"`
	ProcessedAt time.Time `db:"processed_at" json:"processedAt"`
}
