package api

import (
	"github.com/flexprice/billing-engine/internal/api/middleware"
	v1 "github.com/flexprice/billing-engine/internal/api/v1"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every v1 handler the router wires up.
type Handlers struct {
	Health      *v1.HealthHandler
	Ingestion   *v1.IngestionHandler
	Entitlement *v1.EntitlementHandler
	Ledger      *v1.LedgerHandler
	Checkout    *v1.CheckoutHandler
	Webhook     *v1.WebhookHandler
	Onboarding  *v1.OnboardingHandler
	Admin       *v1.AdminHandler
}

// NewRouter wires the §6 HTTP surface: admin routes behind AdminAuth,
// app-scoped routes behind ClientAuth + AppIDMatch, and the Stripe
// webhook behind raw-body preservation instead of JWT auth.
func NewRouter(h Handlers, cfg *config.Configuration, authService service.AuthService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID, middleware.CORS)

	router.GET("/healthz", h.Health.Health)

	v1Group := router.Group("/v1")

	admin := v1Group.Group("/admin", middleware.AdminAuth(cfg), middleware.ErrorHandler())
	{
		admin.POST("/apps", h.Admin.CreateApp)
		admin.POST("/apps/:appId/secrets", h.Admin.MintAppSecret)
		admin.DELETE("/apps/:appId/secrets/:kid", h.Admin.RevokeAppSecret)
	}

	adminCRUD := v1Group.Group("", middleware.AdminAuth(cfg), middleware.ErrorHandler())
	{
		adminCRUD.POST("/plans", h.Admin.CreatePlan)
		adminCRUD.POST("/plans/:planId/stripe-products", h.Admin.AddStripeProductMap)

		adminCRUD.POST("/bundles", h.Admin.CreateBundle)
		adminCRUD.POST("/bundles/:bundleId/apps", h.Admin.AddBundleApp)
		adminCRUD.POST("/bundles/:bundleId/meter-policies", h.Admin.AddBundleMeterPolicy)

		adminCRUD.POST("/contracts", h.Admin.CreateContract)
		adminCRUD.POST("/contracts/:contractId/overrides", h.Admin.AddContractOverride)

		adminCRUD.POST("/pricebooks", h.Admin.CreatePriceBook)
		adminCRUD.POST("/pricebooks/:priceBookId/rules", h.Admin.AddPriceRule)

		adminCRUD.POST("/invoices/generate/:contractId", h.Admin.GenerateInvoice)
		adminCRUD.GET("/invoices/:invoiceId", h.Admin.GetInvoice)
	}

	// Stripe webhook: raw body must survive untouched for signature
	// verification, so it skips ClientAuth entirely.
	webhook := v1Group.Group("", middleware.PreserveRawBody, middleware.ErrorHandler())
	webhook.POST("/stripe/webhook", h.Webhook.Stripe)

	apps := v1Group.Group("/apps/:appId", middleware.ClientAuth(authService), middleware.AppIDMatch, middleware.ErrorHandler())
	{
		apps.POST("/users", h.Onboarding.CreateUser)
		apps.POST("/teams", h.Onboarding.CreateTeam)
		apps.POST("/teams/:teamId/users", h.Onboarding.AddTeamMember)

		apps.POST("/usage/events", h.Ingestion.Ingest)

		apps.GET("/teams/:teamId/entitlements", h.Entitlement.Get)

		apps.POST("/teams/:teamId/checkout/subscription", h.Checkout.CreateSubscriptionCheckout)
		apps.POST("/teams/:teamId/topup/checkout", h.Checkout.CreateTopUpCheckout)

		apps.GET("/teams/:teamId/ledger", h.Ledger.Entries)
		apps.GET("/teams/:teamId/ledger/balance", h.Ledger.Balance)
	}

	return router
}
