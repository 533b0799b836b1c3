package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flexprice/billing-engine/internal/api"
	v1 "github.com/flexprice/billing-engine/internal/api/v1"
	"github.com/flexprice/billing-engine/internal/clickhouse"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/consumer"
	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	"github.com/flexprice/billing-engine/internal/domain/jtiusage"
	"github.com/flexprice/billing-engine/internal/dynamodb"
	"github.com/flexprice/billing-engine/internal/httpclient"
	"github.com/flexprice/billing-engine/internal/kafka"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/notify"
	"github.com/flexprice/billing-engine/internal/notify/handler"
	notifypublisher "github.com/flexprice/billing-engine/internal/notify/publisher"
	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/flexprice/billing-engine/internal/pubsub"
	"github.com/flexprice/billing-engine/internal/pubsub/memory"
	"github.com/flexprice/billing-engine/internal/publisher"
	"github.com/flexprice/billing-engine/internal/repository"
	"github.com/flexprice/billing-engine/internal/s3"
	"github.com/flexprice/billing-engine/internal/security"
	"github.com/flexprice/billing-engine/internal/sentry"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/stripeclient"
	"github.com/flexprice/billing-engine/internal/svix"
	"github.com/flexprice/billing-engine/internal/temporal"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			// Config & logging
			config.NewConfig,
			logger.NewLogger,

			// Security, storage, monitoring
			security.NewEncryptionService,
			s3.NewService,
			sentry.NewSentryService,

			// Postgres & ClickHouse
			postgres.NewDB,
			clickhouse.NewClickHouseStore,

			// HTTP & third-party billing clients
			httpclient.NewDefaultClient,
			stripeclient.NewClient,

			// Kafka: usage-event transport between Ingestion and Pricing
			kafka.NewProducer,
			kafka.NewConsumer,
			publisher.NewEventPublisher,

			// DynamoDB-backed JTI replay-protection store
			dynamodb.NewClient,
			provideJtiUsageRepo,

			// In-memory pubsub + Svix delivery for the notify service
			provideNotifyPubSub,
			svix.NewClient,
			notifypublisher.NewPublisher,
			handler.NewHandler,
			notify.NewService,

			// Repositories
			repository.NewUserRepository,
			repository.NewTeamRepository,
			repository.NewTeamMemberRepository,
			repository.NewAppRepository,
			repository.NewAppSecretRepository,
			repository.NewBillingEntityRepository,
			repository.NewPlanRepository,
			repository.NewBundleRepository,
			repository.NewBundleAppRepository,
			repository.NewBundleMeterPolicyRepository,
			repository.NewContractRepository,
			repository.NewContractOverrideRepository,
			repository.NewContractRateCardRepository,
			repository.NewExternalTeamRefRepository,
			repository.NewTeamSubscriptionRepository,
			repository.NewTeamAddonRepository,
			repository.NewPriceBookRepository,
			repository.NewPriceRuleRepository,
			repository.NewUsageEventRepository,
			repository.NewBillableLineItemRepository,
			repository.NewLedgerAccountRepository,
			repository.NewLedgerEntryRepository,
			repository.NewInvoiceRepository,
			repository.NewInvoiceLineItemRepository,
			repository.NewWalletConfigRepository,
			repository.NewWebhookEventRepository,
			repository.NewStripeProductMapRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewLedgerService,
			service.NewEntitlementService,
			service.NewSchemaRegistry,
			service.NewIngestionService,
			service.NewPricingEngine,
			service.NewWalletDebiter,
			service.NewCheckoutService,
			service.NewWebhookReconciler,
			service.NewInvoiceService,
			service.NewAuthService,
			service.NewOnboardingService,
			service.NewAdminService,
		),
	)

	// Temporal job scheduler, usage-event consumer, API layer
	opts = append(opts,
		fx.Provide(
			provideTemporalConfigPtr,
			provideTemporalConfigValue,
			temporal.NewTemporalClient,
			temporal.NewActivities,
			temporal.NewWorker,
			temporal.NewScheduler,

			consumer.NewPricingConsumer,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			registerTemporalWorker,
			registerTemporalScheduler,
			registerNotifyService,
			registerPricingConsumer,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideTemporalConfigPtr(cfg *config.Configuration) *config.TemporalConfig {
	return &cfg.Temporal
}

func provideTemporalConfigValue(cfg *config.Configuration) config.TemporalConfig {
	return cfg.Temporal
}

// provideJtiUsageRepo prefers the DynamoDB replay-protection store when
// configured; otherwise it falls back to the Postgres-backed repository,
// since §4.A step 6 only needs an atomic insert-if-absent, not DynamoDB's
// TTL, when no DynamoDB table is provisioned.
func provideJtiUsageRepo(cfg *config.Configuration, db *postgres.DB, dynamoClient *dynamodb.Client, log *logger.Logger) jtiusage.Repository {
	if repo := dynamodb.NewJtiStore(dynamoClient, cfg, log); repo != nil {
		return repo
	}
	return repository.NewJtiUsageRepository(db, log)
}

// provideNotifyPubSub backs the notify service with an in-process
// watermill pubsub: outbound tenant events never need to survive a
// process restart longer than it takes Svix to receive them.
func provideNotifyPubSub(cfg *config.Configuration, log *logger.Logger) pubsub.PubSub {
	return memory.NewPubSub(cfg, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	db *postgres.DB,
	billingEntityRepo billingentity.Repository,
	ingestionService service.IngestionService,
	entitlementService service.EntitlementService,
	ledgerService service.LedgerService,
	checkoutService service.CheckoutService,
	webhookService service.WebhookReconciler,
	onboardingService service.OnboardingService,
	adminService service.AdminService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(db),
		Ingestion:   v1.NewIngestionHandler(ingestionService, log),
		Entitlement: v1.NewEntitlementHandler(entitlementService, log),
		Ledger:      v1.NewLedgerHandler(ledgerService, billingEntityRepo, log),
		Checkout:    v1.NewCheckoutHandler(checkoutService, log),
		Webhook:     v1.NewWebhookHandler(webhookService, log),
		Onboarding:  v1.NewOnboardingHandler(onboardingService, log),
		Admin:       v1.NewAdminHandler(adminService, log),
	}
}

func provideRouter(h api.Handlers, cfg *config.Configuration, authService service.AuthService) *gin.Engine {
	return api.NewRouter(h, cfg, authService)
}

func registerTemporalWorker(lc fx.Lifecycle, w *temporal.Worker) {
	w.RegisterWithLifecycle(lc)
}

func registerTemporalScheduler(lc fx.Lifecycle, s *temporal.Scheduler) {
	s.RegisterWithLifecycle(lc)
}

// registerNotifyService starts the Svix delivery handler alongside the
// HTTP server; it is a no-op when cfg.Notify.Enabled is false.
func registerNotifyService(lc fx.Lifecycle, svc *notify.Service, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop()
		},
	})
}

func registerPricingConsumer(lc fx.Lifecycle, c *consumer.PricingConsumer, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Start(context.Background())
		},
	})
}

func startServer(lc fx.Lifecycle, r *gin.Engine, cfg *config.Configuration, log *logger.Logger) {
	server := &http.Server{Addr: cfg.Server.Address, Handler: r}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("starting API server on %s", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
