package webhookevent

import "context"

// Repository defines persistence operations for WebhookEvent.
type Repository interface {
	// Record attempts the dedup insert. Returns true, nil on first sight;
	// false, nil on an eventId unique-violation.
	Record(ctx context.Context, eventID, eventType string) (recorded bool, err error)
}
