// Package consumer drives the Pricing Engine from the usage-event topic
// the Ingestion Service publishes to, keeping rating off the request path.
package consumer

import (
	"context"
	"encoding/json"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	"github.com/flexprice/billing-engine/internal/kafka"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
)

// PricingConsumer subscribes to the usage-event topic and feeds every
// message through the Pricing Engine, acking on both success and
// non-retriable failure so a single bad event can't wedge the partition.
type PricingConsumer struct {
	consumer kafka.MessageConsumer
	pricing  service.PricingEngine
	cfg      *config.Configuration
	log      *logger.Logger
}

func NewPricingConsumer(consumer kafka.MessageConsumer, pricing service.PricingEngine, cfg *config.Configuration, log *logger.Logger) *PricingConsumer {
	return &PricingConsumer{consumer: consumer, pricing: pricing, cfg: cfg, log: log}
}

// Start blocks processing messages; callers run it in a goroutine.
func (c *PricingConsumer) Start(ctx context.Context) error {
	if c.consumer == nil {
		c.log.Info("kafka consumer disabled, pricing consumer not starting")
		return nil
	}

	messages, err := c.consumer.Subscribe(c.cfg.Kafka.Topic)
	if err != nil {
		return err
	}

	c.log.Infof("pricing consumer subscribed to topic %s", c.cfg.Kafka.Topic)

	go func() {
		for msg := range messages {
			var event usageevent.UsageEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				c.log.Errorw("dropping unparseable usage event", "error", err)
				msg.Ack()
				continue
			}

			if _, _, err := c.pricing.PriceEvent(ctx, &event); err != nil {
				c.log.Errorw("failed to price usage event", "eventId", event.ID, "error", err)
				msg.Nack()
				continue
			}

			msg.Ack()
		}
	}()

	return nil
}
