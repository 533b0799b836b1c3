package types

// AppStatus is the lifecycle state of a tenant app.
type AppStatus string

const (
	AppStatusActive    AppStatus = "ACTIVE"
	AppStatusSuspended AppStatus = "SUSPENDED"
)

// AppSecretStatus gates whether a kid may verify a JWT.
type AppSecretStatus string

const (
	AppSecretStatusActive  AppSecretStatus = "ACTIVE"
	AppSecretStatusRevoked AppSecretStatus = "REVOKED"
)

// TeamKind distinguishes auto-created personal teams from real teams.
type TeamKind string

const (
	TeamKindPersonal TeamKind = "PERSONAL"
	TeamKindStandard TeamKind = "STANDARD"
)

// BillingMode controls how a team is charged for usage.
type BillingMode string

const (
	BillingModeSubscription BillingMode = "SUBSCRIPTION"
	BillingModeWallet       BillingMode = "WALLET"
	BillingModeHybrid       BillingMode = "HYBRID"
	BillingModeEnterprise   BillingMode = "ENTERPRISE_CONTRACT"
)

// TeamMemberRole is a team member's permission level.
type TeamMemberRole string

const (
	TeamMemberRoleOwner  TeamMemberRole = "OWNER"
	TeamMemberRoleAdmin  TeamMemberRole = "ADMIN"
	TeamMemberRoleMember TeamMemberRole = "MEMBER"
)

// TeamMemberStatus tracks whether a membership is currently in force.
type TeamMemberStatus string

const (
	TeamMemberStatusActive  TeamMemberStatus = "ACTIVE"
	TeamMemberStatusRemoved TeamMemberStatus = "REMOVED"
)

// StripeProductKind labels what a StripeProductMap row is used for.
type StripeProductKind string

const (
	StripeProductKindBase    StripeProductKind = "BASE"
	StripeProductKindSeat    StripeProductKind = "SEAT"
	StripeProductKindAddon   StripeProductKind = "ADDON"
	StripeProductKindOverage StripeProductKind = "OVERAGE"
	StripeProductKindTopup   StripeProductKind = "TOPUP"
)

// TeamSubscriptionStatus mirrors Stripe subscription status values.
type TeamSubscriptionStatus string

const (
	TeamSubscriptionStatusActive   TeamSubscriptionStatus = "ACTIVE"
	TeamSubscriptionStatusPastDue  TeamSubscriptionStatus = "PAST_DUE"
	TeamSubscriptionStatusCanceled TeamSubscriptionStatus = "CANCELED"
	TeamSubscriptionStatusIncomp   TeamSubscriptionStatus = "INCOMPLETE"
	TeamSubscriptionStatusTrialing TeamSubscriptionStatus = "TRIALING"
	TeamSubscriptionStatusUnpaid   TeamSubscriptionStatus = "UNPAID"
)

// StripeStatusToTeamSubscriptionStatus maps raw Stripe subscription
// status strings to our typed status, per spec.md §6.
func StripeStatusToTeamSubscriptionStatus(stripeStatus string) TeamSubscriptionStatus {
	switch stripeStatus {
	case "active":
		return TeamSubscriptionStatusActive
	case "past_due":
		return TeamSubscriptionStatusPastDue
	case "canceled":
		return TeamSubscriptionStatusCanceled
	case "incomplete":
		return TeamSubscriptionStatusIncomp
	case "trialing":
		return TeamSubscriptionStatusTrialing
	case "unpaid":
		return TeamSubscriptionStatusUnpaid
	default:
		return TeamSubscriptionStatusActive
	}
}

// LimitType is the shape of a meter's entitlement cap.
type LimitType string

const (
	LimitTypeNone     LimitType = "NONE"
	LimitTypeIncluded LimitType = "INCLUDED"
	LimitTypeUnlim    LimitType = "UNLIMITED"
	LimitTypeHardCap  LimitType = "HARD_CAP"
)

// Enforcement is how strictly a meter's limit is applied.
type Enforcement string

const (
	EnforcementNone Enforcement = "NONE"
	EnforcementSoft Enforcement = "SOFT"
	EnforcementHard Enforcement = "HARD"
)

// OverageBilling describes how usage beyond the included amount is billed.
type OverageBilling string

const (
	OverageBillingNone    OverageBilling = "NONE"
	OverageBillingPerUnit OverageBilling = "PER_UNIT"
	OverageBillingTiered  OverageBilling = "TIERED"
	OverageBillingCustom  OverageBilling = "CUSTOM"
)

// ContractStatus is the lifecycle of an enterprise agreement.
type ContractStatus string

const (
	ContractStatusDraft  ContractStatus = "DRAFT"
	ContractStatusActive ContractStatus = "ACTIVE"
	ContractStatusPaused ContractStatus = "PAUSED"
	ContractStatusEnded  ContractStatus = "ENDED"
)

// BillingPeriod is the contract renewal cadence.
type BillingPeriod string

const (
	BillingPeriodMonthly   BillingPeriod = "MONTHLY"
	BillingPeriodQuarterly BillingPeriod = "QUARTERLY"
)

// PricingMode controls how a period-close invoice is built.
type PricingMode string

const (
	PricingModeFixed           PricingMode = "FIXED"
	PricingModeFixedPlusTrueup PricingMode = "FIXED_PLUS_TRUEUP"
	PricingModeMinCommit       PricingMode = "MIN_COMMIT_TRUEUP"
	PricingModeCustomOnly      PricingMode = "CUSTOM_INVOICE_ONLY"
)

// PriceBookKind separates cost-of-goods pricing from customer pricing.
type PriceBookKind string

const (
	PriceBookKindCOGS     PriceBookKind = "COGS"
	PriceBookKindCustomer PriceBookKind = "CUSTOMER"
)

// PriceRuleType is the discriminant of a price rule's `rule` JSON.
type PriceRuleType string

const (
	PriceRuleTypeFlat    PriceRuleType = "flat"
	PriceRuleTypePerUnit PriceRuleType = "per_unit"
	PriceRuleTypeTiered  PriceRuleType = "tiered"
)

// LedgerAccountType identifies the typed account a ledger entry posts to.
type LedgerAccountType string

const (
	LedgerAccountWallet     LedgerAccountType = "WALLET"
	LedgerAccountAR         LedgerAccountType = "ACCOUNTS_RECEIVABLE"
	LedgerAccountRevenue    LedgerAccountType = "REVENUE"
	LedgerAccountCOGS       LedgerAccountType = "COGS"
	LedgerAccountTax        LedgerAccountType = "TAX"
)

// LedgerEntryType discriminates the kind of monetary event an entry records.
type LedgerEntryType string

const (
	LedgerEntryTopup              LedgerEntryType = "TOPUP"
	LedgerEntrySubscriptionCharge LedgerEntryType = "SUBSCRIPTION_CHARGE"
	LedgerEntryUsageCharge        LedgerEntryType = "USAGE_CHARGE"
	LedgerEntryRefund             LedgerEntryType = "REFUND"
	LedgerEntryAdjustment         LedgerEntryType = "ADJUSTMENT"
	LedgerEntryInvoicePayment     LedgerEntryType = "INVOICE_PAYMENT"
	LedgerEntryCOGSAccrual        LedgerEntryType = "COGS_ACCRUAL"
)

// LedgerReferenceType identifies the external system a ledger entry cites.
type LedgerReferenceType string

const (
	LedgerReferenceStripeInvoice LedgerReferenceType = "STRIPE_INVOICE"
	LedgerReferencePaymentIntent LedgerReferenceType = "STRIPE_PAYMENT_INTENT"
	LedgerReferenceUsageEvent    LedgerReferenceType = "USAGE_EVENT"
	LedgerReferenceManual        LedgerReferenceType = "MANUAL"
)

// InvoiceStatus is the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "DRAFT"
	InvoiceStatusIssued InvoiceStatus = "ISSUED"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
	InvoiceStatusVoid   InvoiceStatus = "VOID"
)

// InvoiceLineItemType labels what an invoice line item represents.
type InvoiceLineItemType string

const (
	InvoiceLineItemBaseFee     InvoiceLineItemType = "BASE_FEE"
	InvoiceLineItemUsageTrueup InvoiceLineItemType = "USAGE_TRUEUP"
	InvoiceLineItemAddon      InvoiceLineItemType = "ADDON"
	InvoiceLineItemCredit     InvoiceLineItemType = "CREDIT"
	InvoiceLineItemAdjustment InvoiceLineItemType = "ADJUSTMENT"
)

// BillingEntityType names the kind of entity a BillingEntity recipient is.
// v1 only ever has TEAM, but the field exists so future non-team entities
// can bill without a schema change.
type BillingEntityType string

const (
	BillingEntityTypeTeam BillingEntityType = "TEAM"
)
