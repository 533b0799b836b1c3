package walletconfig

// WalletConfig is keyed by (TeamID, AppID) and drives the auto-top-up check
// after every wallet debit.
type WalletConfig struct {
	TeamID            string `db:"team_id" json:"teamId"`
	AppID             string `db:"app_id" json:"appId"`
	AutoTopUpEnabled  bool   `db:"auto_top_up_enabled" json:"autoTopUpEnabled"`
	ThresholdMinor    int64  `db:"threshold_minor" json:"thresholdMinor"`
	TopUpAmountMinor  int64  `db:"top_up_amount_minor" json:"topUpAmountMinor"`
	Currency          string `db:"currency" json:"currency"`
}
