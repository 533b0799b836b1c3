package usageevent

import ierr "github.com/flexprice/billing-engine/internal/errors"

func ErrUnknownEventType(eventType string) error {
	return ierr.NewErrorf("unknown event type: %s", eventType).
		WithReportableDetails(map[string]any{"eventType": eventType}).
		Mark(ierr.ErrValidation)
}

func ErrInvalidEnvelope(msg string) error {
	return ierr.NewErrorf("invalid event envelope: %s", msg).
		Mark(ierr.ErrValidation)
}
