package kafka

import (
	"context"
	"encoding/json"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"go.uber.org/zap"
)

// EventPublisher fans accepted UsageEvents out onto the ingestion topic so
// the Pricing Engine can price them off the request path, per §4.P.
type EventPublisher struct {
	producer MessageProducer
	logger   *logger.Logger
	config   *config.KafkaConfig
}

func NewEventPublisher(producer MessageProducer, cfg *config.Configuration, logger *logger.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   logger,
		config:   &cfg.Kafka,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event *usageevent.UsageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to marshal usage event").Mark(ierr.ErrValidation)
	}

	p.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("app_id", event.AppID),
	).Debug("publishing usage event to kafka")

	if err := p.producer.PublishWithID(p.config.Topic, payload, event.ID); err != nil {
		return ierr.WithError(err).WithHint("failed to publish usage event").Mark(ierr.ErrValidation)
	}
	return nil
}
