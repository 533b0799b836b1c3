package config

// DynamoDBConfig holds configuration for the JTI replay-protection store.
type DynamoDBConfig struct {
	InUse       bool   `mapstructure:"in_use" validate:"required" default:"false"`
	Region      string `mapstructure:"region"`
	JtiTableName string `mapstructure:"jti_table_name" default:"jti_usage"`
}
