package config

// NotifyConfig controls outbound delivery of tenant-facing events
// (ledger entries, invoice issuance, entitlement refresh) via Svix.
type NotifyConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Topic     string `mapstructure:"topic" default:"notify"`
	SvixToken string `mapstructure:"svix_token"`
}
