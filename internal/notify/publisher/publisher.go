package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/pubsub"
	"github.com/flexprice/billing-engine/internal/types"
)

// Publisher decouples the services that raise tenant-facing events
// (Ledger, Invoice engine, Entitlement resolver) from delivering them,
// the same way the Ingestion Service decouples from the Pricing Engine
// over Kafka.
type Publisher interface {
	Publish(ctx context.Context, event *types.OutboundEvent) error
	Close() error
}

type notifyPublisher struct {
	pubSub pubsub.PubSub
	config *config.NotifyConfig
	logger *logger.Logger
}

func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) (Publisher, error) {
	return &notifyPublisher{
		pubSub: pubSub,
		config: &cfg.Notify,
		logger: logger,
	}, nil
}

func (p *notifyPublisher) Publish(ctx context.Context, event *types.OutboundEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	messageID := event.ID
	if messageID == "" {
		messageID = watermill.NewUUID()
	}

	msg := message.NewMessage(messageID, payload)
	msg.Metadata.Set("app_id", event.AppID)
	msg.Metadata.Set("kind", string(event.Kind))

	p.logger.Debugw("publishing outbound event",
		"event_id", event.ID,
		"kind", event.Kind,
		"app_id", event.AppID,
		"topic", p.config.Topic,
	)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish outbound event",
			"error", err,
			"event_id", event.ID,
			"kind", event.Kind,
			"app_id", event.AppID,
		)
		return err
	}

	return nil
}

func (p *notifyPublisher) Close() error {
	return p.pubSub.Close()
}
