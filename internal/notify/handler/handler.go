package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/pubsub"
	"github.com/flexprice/billing-engine/internal/svix"
	"github.com/flexprice/billing-engine/internal/types"
)

// Handler delivers outbound events from the notify topic to each app's
// Svix application, which owns retries, signing, and tenant-side endpoint
// management.
type Handler interface {
	HandleEvents(ctx context.Context) error
	Close() error
}

type handler struct {
	pubSub pubsub.PubSub
	config *config.NotifyConfig
	svix   *svix.Client
	logger *logger.Logger
	cancel context.CancelFunc
}

func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	svixClient *svix.Client,
	logger *logger.Logger,
) (Handler, error) {
	return &handler{
		pubSub: pubSub,
		config: &cfg.Notify,
		svix:   svixClient,
		logger: logger,
	}, nil
}

// HandleEvents starts handling outbound events.
func (h *handler) HandleEvents(c context.Context) error {
	ctx, cancel := context.WithCancel(c)
	h.cancel = cancel

	h.logger.Debugw("subscribing to outbound events", "topic", h.config.Topic)

	messages, err := h.pubSub.Subscribe(ctx, h.config.Topic)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	h.logger.Infow("successfully subscribed to outbound events", "topic", h.config.Topic)

	go func() {
		h.logger.Debug("starting outbound event processing loop")
		defer h.logger.Info("outbound event processing loop stopped")
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					h.logger.Warn("message channel closed")
					return
				}

				msgCtx, msgCancel := context.WithTimeout(ctx, 30*time.Second)

				if err := h.processMessage(msgCtx, msg); err != nil {
					h.logger.Errorw("failed to process outbound event",
						"error", err,
						"message_uuid", msg.UUID,
					)
					msg.Nack()
				} else {
					msg.Ack()
				}

				msgCancel()
			}
		}
	}()

	return nil
}

func (h *handler) processMessage(ctx context.Context, msg *message.Message) error {
	var event types.OutboundEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Errorw("failed to unmarshal outbound event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		// Don't retry on unmarshal errors.
		return nil
	}

	appID, err := h.svix.GetOrCreateApplication(ctx, event.AppID)
	if err != nil {
		return fmt.Errorf("failed to resolve svix application: %w", err)
	}
	if appID == "" {
		// Svix disabled; nothing to deliver.
		return nil
	}

	if err := h.svix.SendMessage(ctx, appID, string(event.Kind), event.Payload); err != nil {
		h.logger.Errorw("failed to deliver outbound event",
			"error", err,
			"message_uuid", msg.UUID,
			"app_id", event.AppID,
			"kind", event.Kind,
		)
		return err
	}

	h.logger.Infow("delivered outbound event",
		"message_uuid", msg.UUID,
		"app_id", event.AppID,
		"kind", event.Kind,
	)

	return nil
}

// Close closes the handler.
func (h *handler) Close() error {
	h.logger.Info("closing notify handler")
	if h.cancel != nil {
		h.cancel()
	}
	return h.pubSub.Close()
}
