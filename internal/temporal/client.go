package temporal

import (
	"context"
	"crypto/tls"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/logger"
	"go.temporal.io/sdk/client"
)

// APIKeyProvider attaches the configured API key and namespace to every
// outbound Temporal frontend call.
type APIKeyProvider struct {
	APIKey    string
	Namespace string
}

// GetHeaders implements client.HeadersProvider.
func (a *APIKeyProvider) GetHeaders(_ context.Context) (map[string]string, error) {
	return map[string]string{
		"Authorization":      "Bearer " + a.APIKey,
		"temporal-namespace": a.Namespace,
	}, nil
}

// TemporalClient wraps the Temporal SDK client for application use.
type TemporalClient struct {
	Client client.Client
}

// NewTemporalClient dials the Temporal frontend described by cfg.
func NewTemporalClient(cfg *config.TemporalConfig, log *logger.Logger) (*TemporalClient, error) {
	log.Info("creating temporal client")

	opts := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
	}
	if cfg.APIKey != "" {
		opts.HeadersProvider = &APIKeyProvider{APIKey: cfg.APIKey, Namespace: cfg.Namespace}
	}
	if cfg.TLS {
		opts.ConnectionOptions.TLS = &tls.Config{}
	}

	c, err := client.Dial(opts)
	if err != nil {
		log.Error("failed to create temporal client", "error", err)
		return nil, err
	}

	log.Info("temporal client created")
	return &TemporalClient{Client: c}, nil
}
