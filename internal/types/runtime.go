package types

// RunMode selects which process role cmd/server starts as.
type RunMode string

const (
	ModeAPI      RunMode = "api"
	ModeConsumer RunMode = "consumer"
	ModeWorker   RunMode = "worker"
	ModeLocal    RunMode = "local"
)

// LogLevel controls the minimum zap level emitted.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// PubSubType selects the transport backing the internal pub/sub router.
type PubSubType string

const (
	PubSubTypeMemory PubSubType = "memory"
	PubSubTypeKafka  PubSubType = "kafka"
)

// PublishDestination selects where ingested usage events are mirrored.
type PublishDestination string

const (
	PublishDestinationKafka      PublishDestination = "kafka"
	PublishDestinationClickHouse PublishDestination = "clickhouse"
	PublishDestinationBoth       PublishDestination = "both"
)
