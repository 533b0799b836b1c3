package config

import (
	"github.com/flexprice/billing-engine/internal/types"
)

// EventConfig holds configuration for where ingested usage events land.
type EventConfig struct {
	PublishDestination types.PublishDestination `mapstructure:"publish_destination" default:"both"`
}
