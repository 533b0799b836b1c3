package bundleapp

import "encoding/json"

// BundleApp is one app covered by a Bundle, carrying the default feature
// flags merged over by any ContractOverride for that app.
type BundleApp struct {
	ID                  string          `db:"id" json:"id"`
	BundleID            string          `db:"bundle_id" json:"bundleId"`
	AppID               string          `db:"app_id" json:"appId"`
	DefaultFeatureFlags json.RawMessage `db:"default_feature_flags" json:"defaultFeatureFlags"`
}

// FeatureFlags decodes DefaultFeatureFlags into a map.
func (b *BundleApp) FeatureFlags() (map[string]bool, error) {
	if len(b.DefaultFeatureFlags) == 0 {
		return map[string]bool{}, nil
	}
	var flags map[string]bool
	if err := json.Unmarshal(b.DefaultFeatureFlags, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}
