package notify

import (
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/notify/handler"
	"github.com/flexprice/billing-engine/internal/notify/publisher"
	"github.com/flexprice/billing-engine/internal/pubsub"
	"github.com/flexprice/billing-engine/internal/pubsub/memory"
	"github.com/flexprice/billing-engine/internal/svix"
	"go.uber.org/fx"
)

// Module provides all notify-related dependencies.
var Module = fx.Options(
	fx.Provide(
		providePubSub,
		svix.NewClient,
		publisher.NewPublisher,
		handler.NewHandler,
		NewService,
	),
)

// providePubSub backs the notify topic with the in-memory gochannel
// transport; single-process deployments never need the Kafka pubsub
// adapter that usage ingestion uses for its own, much higher-volume topic.
func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	return memory.NewPubSub(cfg, logger)
}
