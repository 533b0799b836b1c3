package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier.
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable identifier with a prefix,
// e.g. inv_0ujsswThIGTUYm2K8FjOOfXtY1K.
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

// GenerateShortID returns a short, human-facing identifier used for
// invoice numbers, where a full ULID would be noisy to read aloud.
func GenerateShortID() string {
	id, err := shortid.Generate()
	if err != nil {
		return GenerateUUID()
	}
	return id
}

const (
	UUIDPrefixApp               = "app"
	UUIDPrefixAppSecret         = "asec"
	UUIDPrefixUser              = "user"
	UUIDPrefixTeam              = "team"
	UUIDPrefixBillingEntity     = "bent"
	UUIDPrefixTeamMember        = "tmem"
	UUIDPrefixExternalTeamRef   = "xref"
	UUIDPrefixPlan              = "plan"
	UUIDPrefixAddon             = "addon"
	UUIDPrefixTeamAddon         = "taddon"
	UUIDPrefixTeamSubscription  = "tsub"
	UUIDPrefixStripeProductMap  = "spmap"
	UUIDPrefixBundle            = "bundle"
	UUIDPrefixBundleApp         = "bapp"
	UUIDPrefixBundleMeterPolicy = "bmp"
	UUIDPrefixContract          = "contract"
	UUIDPrefixContractOverride  = "covr"
	UUIDPrefixContractRateCard  = "crc"
	UUIDPrefixPriceBook         = "pbook"
	UUIDPrefixPriceRule         = "prule"
	UUIDPrefixUsageEvent        = "event"
	UUIDPrefixBillableLineItem  = "bline"
	UUIDPrefixLedgerAccount     = "lacc"
	UUIDPrefixLedgerEntry       = "lent"
	UUIDPrefixInvoice           = "inv"
	UUIDPrefixInvoiceLineItem   = "invline"
	UUIDPrefixWebhookEvent      = "whevt"
	UUIDPrefixJtiUsage          = "jti"
	UUIDPrefixWalletConfig      = "wcfg"
)
