package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
	"go.uber.org/zap"
)

const (
	minBatchSize = 1
	maxBatchSize = 1000
)

// IngestEvent is one raw event in a §4.I batch request.
type IngestEvent struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	EventType      string          `json:"eventType"`
	Timestamp      string          `json:"timestamp"`
	Source         string          `json:"source"`
	TeamID         *string         `json:"teamId,omitempty"`
	UserID         *string         `json:"userId,omitempty"`
	Payload        json.RawMessage `json:"payload"`
}

// IngestResult is §4.I step 6's response shape.
type IngestResult struct {
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
}

// IngestionService implements the batch-ingest entry point of §4.I.
type IngestionService interface {
	IngestBatch(ctx context.Context, appID string, events []IngestEvent) (*IngestResult, error)
}

type ingestionService struct {
	ServiceParams
	Registry SchemaRegistry
}

// NewIngestionService accepts pricing as a kafka/ClickHouse fan-out via
// EventPublisher rather than a direct PricingEngine call, decoupling the
// request path from pricing per SPEC_FULL's domain stack note.
func NewIngestionService(params ServiceParams, registry SchemaRegistry) IngestionService {
	return &ingestionService{ServiceParams: params, Registry: registry}
}

func (s *ingestionService) IngestBatch(ctx context.Context, appID string, events []IngestEvent) (*IngestResult, error) {
	if len(events) < minBatchSize || len(events) > maxBatchSize {
		return nil, ierr.NewErrorf("batch size must be between %d and %d", minBatchSize, maxBatchSize).
			Mark(ierr.ErrValidation)
	}

	result := &IngestResult{}
	for _, raw := range events {
		created, err := s.ingestOne(ctx, appID, raw)
		if err != nil {
			return nil, err
		}
		if created {
			result.Accepted++
		} else {
			result.Duplicates++
		}
	}
	return result, nil
}

// ingestOne runs §4.I steps 1-5 for a single event. Returns true, nil when
// the event was newly persisted; false, nil when it was a duplicate.
func (s *ingestionService) ingestOne(ctx context.Context, appID string, raw IngestEvent) (bool, error) {
	if err := validateEnvelope(raw); err != nil {
		return false, err
	}

	payload := map[string]any{}
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, &payload); err != nil {
			return false, usageevent.ErrInvalidEnvelope("payload is not a JSON object")
		}
	}

	if _, _, _, ok := s.Registry.Get(raw.EventType); !ok {
		return false, usageevent.ErrUnknownEventType(raw.EventType)
	}
	if fieldErrs := s.Registry.Validate(raw.EventType, payload); len(fieldErrs) > 0 {
		return false, ierr.NewErrorf("payload does not match registered shape for %s", raw.EventType).
			WithReportableDetails(map[string]any{"eventType": raw.EventType, "errors": fieldErrs}).
			Mark(ierr.ErrValidation)
	}

	teamID, err := s.resolveTeamID(ctx, appID, raw)
	if err != nil {
		return false, err
	}

	billToID, err := s.resolveBillToID(ctx, teamID)
	if err != nil {
		return false, err
	}

	ts, err := time.Parse(time.RFC3339, raw.Timestamp)
	if err != nil {
		return false, usageevent.ErrInvalidEnvelope("timestamp is not ISO-8601")
	}

	event := &usageevent.UsageEvent{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixUsageEvent),
		AppID:          appID,
		TeamID:         teamID,
		BillToID:       billToID,
		UserID:         raw.UserID,
		EventType:      raw.EventType,
		Timestamp:      ts,
		IdempotencyKey: raw.IdempotencyKey,
		Payload:        raw.Payload,
		Source:         raw.Source,
	}

	created, err := s.UsageEventRepo.Create(ctx, event)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	if err := s.EventPublisher.Publish(ctx, event); err != nil {
		s.Logger.With(zap.String("event_id", event.ID), zap.Error(err)).
			Error("failed to publish accepted usage event")
	}

	return true, nil
}

func validateEnvelope(raw IngestEvent) error {
	if raw.IdempotencyKey == "" {
		return usageevent.ErrInvalidEnvelope("idempotencyKey is required")
	}
	if !usageevent.EventTypePattern.MatchString(raw.EventType) {
		return usageevent.ErrInvalidEnvelope("eventType does not match the required pattern")
	}
	if raw.Source == "" {
		return usageevent.ErrInvalidEnvelope("source is required")
	}
	if (raw.TeamID == nil || *raw.TeamID == "") && (raw.UserID == nil || *raw.UserID == "") {
		return usageevent.ErrInvalidEnvelope("at least one of teamId or userId is required")
	}
	return nil
}

// resolveTeamID implements §4.I step 3: a direct teamId wins; otherwise
// the event's owning user's unique PERSONAL team is resolved.
func (s *ingestionService) resolveTeamID(ctx context.Context, appID string, raw IngestEvent) (string, error) {
	if raw.TeamID != nil && *raw.TeamID != "" {
		return *raw.TeamID, nil
	}

	u, err := s.UserRepo.GetByExternalRef(ctx, appID, *raw.UserID)
	if err != nil {
		return "", err
	}

	t, err := s.TeamRepo.GetPersonalTeamByOwner(ctx, appID, u.ID)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

// resolveBillToID implements §4.I step 4.
func (s *ingestionService) resolveBillToID(ctx context.Context, teamID string) (string, error) {
	be, err := s.BillingEntityRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return "", err
	}
	return be.ID, nil
}
