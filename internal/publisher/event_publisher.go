package publisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/flexprice/billing-engine/internal/clickhouse"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	"github.com/flexprice/billing-engine/internal/kafka"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/types"
	"go.uber.org/zap"
)

// EventPublisher decouples the Ingestion Service from the Pricing Engine:
// an accepted UsageEvent is fanned out here instead of priced inline.
type EventPublisher interface {
	Publish(ctx context.Context, event *usageevent.UsageEvent) error
}

type eventPublisher struct {
	kafkaPublisher *kafka.EventPublisher
	chStore        *clickhouse.ClickHouseStore
	logger         *logger.Logger
	config         *config.EventConfig
	mu             sync.RWMutex
}

// NewEventPublisher builds the configured fan-out: kafka decouples pricing
// from the request path, the ClickHouse mirror exists for a future
// columnar aggregateUsage path (§4.V), per the publish_destination setting.
func NewEventPublisher(
	cfg *config.Configuration,
	logger *logger.Logger,
	kafkaProducer kafka.MessageProducer,
	chStore *clickhouse.ClickHouseStore,
) (EventPublisher, error) {
	publisher := &eventPublisher{
		logger: logger,
		config: &cfg.Event,
	}

	if cfg.Event.PublishDestination == types.PublishDestinationKafka || cfg.Event.PublishDestination == types.PublishDestinationBoth {
		if kafkaProducer == nil {
			return nil, fmt.Errorf("kafka producer is not initialized but it is one of the publish destinations")
		}
		publisher.kafkaPublisher = kafka.NewEventPublisher(kafkaProducer, cfg, logger)
	}

	if cfg.Event.PublishDestination == types.PublishDestinationClickHouse || cfg.Event.PublishDestination == types.PublishDestinationBoth {
		if chStore == nil {
			return nil, fmt.Errorf("clickhouse store is not initialized but it is one of the publish destinations")
		}
		publisher.chStore = chStore
	}

	if publisher.kafkaPublisher == nil && publisher.chStore == nil {
		return nil, fmt.Errorf("no publishers configured for destination: %s", cfg.Event.PublishDestination)
	}

	return publisher, nil
}

func (s *eventPublisher) Publish(ctx context.Context, event *usageevent.UsageEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("destination", string(s.config.PublishDestination)),
	).Debug("publishing usage event")

	switch s.config.PublishDestination {
	case types.PublishDestinationKafka:
		return s.kafkaPublisher.Publish(ctx, event)
	case types.PublishDestinationClickHouse:
		return s.chStore.InsertUsageEvent(ctx, event)
	case types.PublishDestinationBoth:
		var kafkaErr, chErr error
		if err := s.kafkaPublisher.Publish(ctx, event); err != nil {
			kafkaErr = fmt.Errorf("failed to publish to kafka: %w", err)
		}
		if err := s.chStore.InsertUsageEvent(ctx, event); err != nil {
			chErr = fmt.Errorf("failed to mirror to clickhouse: %w", err)
		}
		if kafkaErr != nil && chErr != nil {
			return fmt.Errorf("failed to publish to both kafka and clickhouse: %v, %v", kafkaErr, chErr)
		} else if kafkaErr != nil {
			return kafkaErr
		} else if chErr != nil {
			return chErr
		}
		return nil
	default:
		return fmt.Errorf("unknown publish destination: %s", s.config.PublishDestination)
	}
}
