package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/Shopify/sarama"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/flexprice/billing-engine/internal/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration is the root of the process configuration tree. Every
// sub-section maps to one external collaborator or ambient concern.
type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Kafka      KafkaConfig      `validate:"required"`
	ClickHouse ClickHouseConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Sentry     SentryConfig     `validate:"required"`
	Pyroscope  PyroscopeConfig  `validate:"omitempty"`
	Event      EventConfig      `validate:"required"`
	DynamoDB   DynamoDBConfig   `validate:"required"`
	Temporal   TemporalConfig   `validate:"required"`
	Notify     NotifyConfig     `validate:"omitempty"`
	Secrets    SecretsConfig    `validate:"required"`
	S3         S3Config         `validate:"required"`
	Cache      CacheConfig      `validate:"required"`
	Stripe     StripeConfig     `validate:"omitempty"`
	ChartMogul ChartMogulConfig `validate:"omitempty"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" validate:"required"`
}

type S3Config struct {
	Enabled             bool         `mapstructure:"enabled" validate:"required"`
	Region              string       `mapstructure:"region" validate:"required"`
	InvoiceBucketConfig BucketConfig `mapstructure:"invoice" validate:"required"`
}

type BucketConfig struct {
	Bucket                string `mapstructure:"bucket" validate:"required"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration" validate:"required"`
	KeyPrefix             string `mapstructure:"key_prefix" validate:"omitempty"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// AuthConfig holds the per-app HMAC JWT verification parameters and the
// single shared admin API key used by the admin surface.
type AuthConfig struct {
	JWTClockSkewSeconds int          `mapstructure:"jwt_clock_skew_seconds" default:"60"`
	AdminAPIKeyHeader   string       `mapstructure:"admin_api_key_header" default:"x-admin-api-key"`
	AdminAPIKey         string       `mapstructure:"admin_api_key" validate:"required"`
	RateLimit           RateLimit    `mapstructure:"rate_limit"`
}

type RateLimit struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"20"`
	Burst             int     `mapstructure:"burst" default:"40"`
}

type KafkaConfig struct {
	Brokers       []string             `mapstructure:"brokers" validate:"required"`
	ConsumerGroup string               `mapstructure:"consumer_group" validate:"required"`
	Topic         string               `mapstructure:"topic" validate:"required"`
	UseSASL       bool                 `mapstructure:"use_sasl"`
	SASLMechanism sarama.SASLMechanism `mapstructure:"sasl_mechanism"`
	SASLUser      string               `mapstructure:"sasl_user"`
	SASLPassword  string               `mapstructure:"sasl_password"`
	ClientID      string               `mapstructure:"client_id" validate:"required"`
	Retry         RouterRetryConfig    `mapstructure:"retry"`
}

// RouterRetryConfig parameterizes the watermill retry middleware shared by
// every message router (Pricing Engine's usage-event consumer, the notify
// delivery handler).
type RouterRetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries" default:"5"`
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"500ms"`
	MaxInterval     time.Duration `mapstructure:"max_interval" default:"10s"`
	Multiplier      float64       `mapstructure:"multiplier" default:"2.0"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time" default:"1m"`
}

type ClickHouseConfig struct {
	Address  string `mapstructure:"address" validate:"required"`
	TLS      bool   `mapstructure:"tls"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Database string `mapstructure:"database" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" validate:"required"`
	Port                   int    `mapstructure:"port" validate:"required"`
	User                   string `mapstructure:"user" validate:"required"`
	Password               string `mapstructure:"password" validate:"required"`
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" default:"5"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" default:"60"`
	AutoMigrate            bool   `mapstructure:"auto_migrate" default:"false"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" default:"1.0"`
}

type PyroscopeConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServerAddr  string `mapstructure:"server_addr"`
	Environment string `mapstructure:"environment"`
}

type TemporalConfig struct {
	Address          string `mapstructure:"address" validate:"required"`
	Namespace        string `mapstructure:"namespace" validate:"required"`
	APIKey           string `mapstructure:"api_key"`
	APIKeyName       string `mapstructure:"api_key_name"`
	TLS              bool   `mapstructure:"tls"`
	TaskQueue        string `mapstructure:"task_queue" default:"billing-jobs"`
	WalletDebitQueue string `mapstructure:"wallet_debit_queue" default:"wallet-debit-daily"`
	PeriodCloseQueue string `mapstructure:"period_close_queue" default:"period-close"`
}

type SecretsConfig struct {
	EncryptionKey string `mapstructure:"encryption_key" validate:"required"`
}

type StripeConfig struct {
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type ChartMogulConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	AccountID string `mapstructure:"account_id"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	// Step 1: Load `.env` if it exists
	_ = godotenv.Load()

	// Step 2: Initialize Viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath("./config")

	// Step 3: Set up environment variables support
	v.SetEnvPrefix("BILLING")
	v.AutomaticEnv()

	// Step 4: Environment variable key mapping (e.g., BILLING_KAFKA_CONSUMER_GROUP)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Step 5: Read the YAML file
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct, %v", err)
	}

	return &cfg, nil
}

func (c Configuration) Validate() error {
	return validator.ValidateRequest(c)
}

// GetDefaultConfig returns a default configuration for local development.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
