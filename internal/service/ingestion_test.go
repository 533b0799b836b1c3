package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsageEventRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeUsageEventRepo) Create(ctx context.Context, e *usageevent.UsageEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	key := e.AppID + ":" + e.IdempotencyKey
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeUsageEventRepo) Get(ctx context.Context, id string) (*usageevent.UsageEvent, error) {
	return nil, nil
}

func (f *fakeUsageEventRepo) AggregateUsage(ctx context.Context, billToID string, start, end time.Time) ([]usageevent.UsageAggregate, error) {
	return nil, nil
}

type fakeBillingEntityRepo struct {
	billingentity.Repository
	entity *billingentity.BillingEntity
}

func (f *fakeBillingEntityRepo) GetByTeamID(ctx context.Context, teamID string) (*billingentity.BillingEntity, error) {
	return f.entity, nil
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(ctx context.Context, event *usageevent.UsageEvent) error {
	return nil
}

type fakeSchemaRegistry struct{}

func (fakeSchemaRegistry) Validate(eventType string, payload map[string]any) []FieldError {
	return nil
}

func (fakeSchemaRegistry) Get(eventType string) (SchemaStatus, int, string, bool) {
	return SchemaStatusActive, 1, "", true
}

func newTestIngestionService(usageRepo usageevent.Repository) IngestionService {
	return NewIngestionService(ServiceParams{
		Logger:            &logger.Logger{},
		BillingEntityRepo: &fakeBillingEntityRepo{entity: &billingentity.BillingEntity{ID: "bill-1", TeamID: "team-1"}},
		UsageEventRepo:    usageRepo,
		EventPublisher:    noopEventPublisher{},
	}, fakeSchemaRegistry{})
}

func ingestEvent(idempotencyKey string) IngestEvent {
	teamID := "team-1"
	return IngestEvent{
		IdempotencyKey: idempotencyKey,
		EventType:      "llm.completion.v1",
		Timestamp:      "2026-01-01T00:00:00Z",
		Source:         "sdk",
		TeamID:         &teamID,
		Payload:        json.RawMessage(`{}`),
	}
}

// TestIngestBatch_Idempotency covers §8 scenario 3: submitting the same
// idempotencyKey twice accepts it once and reports the second as a
// duplicate, not an error.
func TestIngestBatch_Idempotency(t *testing.T) {
	svc := newTestIngestionService(&fakeUsageEventRepo{})

	result, err := svc.IngestBatch(context.Background(), "app-1", []IngestEvent{ingestEvent("idem-1")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 0, result.Duplicates)

	result, err = svc.IngestBatch(context.Background(), "app-1", []IngestEvent{ingestEvent("idem-1")})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Accepted)
	assert.Equal(t, 1, result.Duplicates)
}

func TestIngestBatch_RejectsEmptyBatch(t *testing.T) {
	svc := newTestIngestionService(&fakeUsageEventRepo{})
	_, err := svc.IngestBatch(context.Background(), "app-1", nil)
	assert.Error(t, err)
}

func TestIngestBatch_RejectsOversizedBatch(t *testing.T) {
	svc := newTestIngestionService(&fakeUsageEventRepo{})
	events := make([]IngestEvent, maxBatchSize+1)
	for i := range events {
		events[i] = ingestEvent("k")
	}
	_, err := svc.IngestBatch(context.Background(), "app-1", events)
	assert.Error(t, err)
}
