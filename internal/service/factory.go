package service

import (
	"github.com/flexprice/billing-engine/internal/clickhouse"
	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/app"
	"github.com/flexprice/billing-engine/internal/domain/appsecret"
	"github.com/flexprice/billing-engine/internal/domain/billablelineitem"
	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	"github.com/flexprice/billing-engine/internal/domain/bundle"
	"github.com/flexprice/billing-engine/internal/domain/bundleapp"
	"github.com/flexprice/billing-engine/internal/domain/bundlemeterpolicy"
	"github.com/flexprice/billing-engine/internal/domain/contract"
	"github.com/flexprice/billing-engine/internal/domain/contractoverride"
	"github.com/flexprice/billing-engine/internal/domain/contractratecard"
	"github.com/flexprice/billing-engine/internal/domain/externalteamref"
	"github.com/flexprice/billing-engine/internal/domain/invoice"
	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
	"github.com/flexprice/billing-engine/internal/domain/jtiusage"
	"github.com/flexprice/billing-engine/internal/domain/ledgeraccount"
	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	"github.com/flexprice/billing-engine/internal/domain/plan"
	"github.com/flexprice/billing-engine/internal/domain/pricebook"
	"github.com/flexprice/billing-engine/internal/domain/pricerule"
	"github.com/flexprice/billing-engine/internal/domain/stripeproductmap"
	"github.com/flexprice/billing-engine/internal/domain/team"
	"github.com/flexprice/billing-engine/internal/domain/teamaddon"
	"github.com/flexprice/billing-engine/internal/domain/teammember"
	"github.com/flexprice/billing-engine/internal/domain/teamsubscription"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	"github.com/flexprice/billing-engine/internal/domain/user"
	"github.com/flexprice/billing-engine/internal/domain/walletconfig"
	"github.com/flexprice/billing-engine/internal/domain/webhookevent"
	"github.com/flexprice/billing-engine/internal/httpclient"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/notify"
	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/flexprice/billing-engine/internal/publisher"
	"github.com/flexprice/billing-engine/internal/s3"
	"github.com/flexprice/billing-engine/internal/security"
)

// ServiceParams holds the dependencies shared by every service. Every
// service struct embeds this instead of taking its own constructor
// arguments, so adding a collaborator never touches every service's
// signature.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     *postgres.DB

	Encryption security.EncryptionService
	S3         s3.Service
	HTTPClient httpclient.Client

	// Repositories
	UserRepo             user.Repository
	TeamRepo             team.Repository
	TeamMemberRepo       teammember.Repository
	AppRepo              app.Repository
	AppSecretRepo        appsecret.Repository
	BillingEntityRepo    billingentity.Repository
	PlanRepo             plan.Repository
	BundleRepo           bundle.Repository
	BundleAppRepo        bundleapp.Repository
	BundleMeterPolicyRepo bundlemeterpolicy.Repository
	ContractRepo         contract.Repository
	ContractOverrideRepo contractoverride.Repository
	ContractRateCardRepo contractratecard.Repository
	ExternalTeamRefRepo  externalteamref.Repository
	TeamSubscriptionRepo teamsubscription.Repository
	TeamAddonRepo        teamaddon.Repository
	PriceBookRepo        pricebook.Repository
	PriceRuleRepo        pricerule.Repository
	UsageEventRepo       usageevent.Repository
	BillableLineItemRepo billablelineitem.Repository
	LedgerAccountRepo    ledgeraccount.Repository
	LedgerEntryRepo      ledgerentry.Repository
	InvoiceRepo          invoice.Repository
	InvoiceLineItemRepo  invoicelineitem.Repository
	WalletConfigRepo     walletconfig.Repository
	WebhookEventRepo     webhookevent.Repository
	JtiUsageRepo         jtiusage.Repository
	StripeProductMapRepo stripeproductmap.Repository

	// Publishers / mirrors
	EventPublisher publisher.EventPublisher
	Notify         notify.Service
	ChStore        *clickhouse.ClickHouseStore
}

// NewServiceParams wires every repository and collaborator fx provides
// into one ServiceParams value for the individual NewXService
// constructors to embed.
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	db *postgres.DB,
	encryption security.EncryptionService,
	s3Service s3.Service,
	httpClient httpclient.Client,
	userRepo user.Repository,
	teamRepo team.Repository,
	teamMemberRepo teammember.Repository,
	appRepo app.Repository,
	appSecretRepo appsecret.Repository,
	billingEntityRepo billingentity.Repository,
	planRepo plan.Repository,
	bundleRepo bundle.Repository,
	bundleAppRepo bundleapp.Repository,
	bundleMeterPolicyRepo bundlemeterpolicy.Repository,
	contractRepo contract.Repository,
	contractOverrideRepo contractoverride.Repository,
	contractRateCardRepo contractratecard.Repository,
	externalTeamRefRepo externalteamref.Repository,
	teamSubscriptionRepo teamsubscription.Repository,
	teamAddonRepo teamaddon.Repository,
	priceBookRepo pricebook.Repository,
	priceRuleRepo pricerule.Repository,
	usageEventRepo usageevent.Repository,
	billableLineItemRepo billablelineitem.Repository,
	ledgerAccountRepo ledgeraccount.Repository,
	ledgerEntryRepo ledgerentry.Repository,
	invoiceRepo invoice.Repository,
	invoiceLineItemRepo invoicelineitem.Repository,
	walletConfigRepo walletconfig.Repository,
	webhookEventRepo webhookevent.Repository,
	jtiUsageRepo jtiusage.Repository,
	stripeProductMapRepo stripeproductmap.Repository,
	eventPublisher publisher.EventPublisher,
	notifyService notify.Service,
	chStore *clickhouse.ClickHouseStore,
) ServiceParams {
	return ServiceParams{
		Logger:                log,
		Config:                cfg,
		DB:                    db,
		Encryption:            encryption,
		S3:                    s3Service,
		HTTPClient:            httpClient,
		UserRepo:              userRepo,
		TeamRepo:              teamRepo,
		TeamMemberRepo:        teamMemberRepo,
		AppRepo:               appRepo,
		AppSecretRepo:         appSecretRepo,
		BillingEntityRepo:     billingEntityRepo,
		PlanRepo:              planRepo,
		BundleRepo:            bundleRepo,
		BundleAppRepo:         bundleAppRepo,
		BundleMeterPolicyRepo: bundleMeterPolicyRepo,
		ContractRepo:          contractRepo,
		ContractOverrideRepo:  contractOverrideRepo,
		ContractRateCardRepo:  contractRateCardRepo,
		ExternalTeamRefRepo:   externalTeamRefRepo,
		TeamSubscriptionRepo:  teamSubscriptionRepo,
		TeamAddonRepo:         teamAddonRepo,
		PriceBookRepo:         priceBookRepo,
		PriceRuleRepo:         priceRuleRepo,
		UsageEventRepo:        usageEventRepo,
		BillableLineItemRepo:  billableLineItemRepo,
		LedgerAccountRepo:     ledgerAccountRepo,
		LedgerEntryRepo:       ledgerEntryRepo,
		InvoiceRepo:           invoiceRepo,
		InvoiceLineItemRepo:   invoiceLineItemRepo,
		WalletConfigRepo:      walletConfigRepo,
		WebhookEventRepo:      webhookEventRepo,
		JtiUsageRepo:          jtiUsageRepo,
		StripeProductMapRepo:  stripeProductMapRepo,
		EventPublisher:        eventPublisher,
		Notify:                notifyService,
		ChStore:               chStore,
	}
}
