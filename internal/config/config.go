// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Model  ModelConfig  `mapstructure:"model"`
	Report ReportConfig `mapstructure:"report"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`        // debug, info, warn, error.
	Format      string `mapstructure:"format"`       // "console" or "json".
	ServiceName string `mapstructure:"service_name"` // Root logger name.
	AddSource   bool   `mapstructure:"add_source"`   // Annotate entries with caller info.

	// File output, rotated by lumberjack. Empty LogFile disables it.
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"` // Megabytes before rotation.
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // Days to retain rotated files.
	Compress   bool   `mapstructure:"compress"`
}

// ModelConfig carries the Bedrock invocation parameters. The generation
// constants are fixed per run but live here rather than in code so tests and
// deployments can tune them without a rebuild.
type ModelConfig struct {
	// ModelID names the exact model version to invoke.
	ModelID string `mapstructure:"model_id"`

	// AnthropicVersion is the messages-API protocol tag Bedrock requires in
	// every Claude request body.
	AnthropicVersion string `mapstructure:"anthropic_version"`

	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`

	// Endpoint overrides the Bedrock runtime endpoint, mainly for tests.
	// When empty it is derived from Region.
	Endpoint string `mapstructure:"endpoint"`
	Region   string `mapstructure:"region"`

	// APIKey is the Bedrock bearer token. An empty key means no model client
	// is configured and the locally generated narrative is used instead.
	APIKey string `mapstructure:"api_key"`

	// APITimeout bounds the invoke call. Zero leaves the HTTP client's
	// default in place (no timeout beyond the transport's own).
	APITimeout time.Duration `mapstructure:"api_timeout"`

	// Disabled skips model invocation even when an APIKey is present.
	Disabled bool `mapstructure:"disabled"`
}

// ReportConfig controls report output and optional S3 delivery.
type ReportConfig struct {
	OutputDir string   `mapstructure:"output_dir"`
	S3        S3Config `mapstructure:"s3"`
}

// S3Config configures the report uploader. Any S3-compatible endpoint works.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// SetDefaults initializes default values for all configuration parameters.
// Every tunable the tool reads is listed here so the defaults are documented
// in one place.
func SetDefaults(v *viper.Viper) {
	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "access-review")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// Model invocation: Claude 3 Haiku over the Bedrock messages API with a
	// 4096-token ceiling and moderately creative sampling.
	v.SetDefault("model.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("model.anthropic_version", "bedrock-2023-05-31")
	v.SetDefault("model.max_tokens", 4096)
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.top_p", 0.9)
	v.SetDefault("model.endpoint", "")
	v.SetDefault("model.region", "us-east-1")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.api_timeout", time.Duration(0))
	v.SetDefault("model.disabled", false)

	// Reporting
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.s3.endpoint", "")
	v.SetDefault("report.s3.region", "us-east-1")
	v.SetDefault("report.s3.bucket", "")
	v.SetDefault("report.s3.prefix", "access-review")
	v.SetDefault("report.s3.use_ssl", true)
}

// Load unmarshals the fully resolved viper state into a Config and validates
// the parts that have hard requirements.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// failures deep inside the pipeline.
func (c Config) Validate() error {
	if c.Model.ModelID == "" {
		return fmt.Errorf("model.model_id must not be empty")
	}
	if c.Model.AnthropicVersion == "" {
		return fmt.Errorf("model.anthropic_version must not be empty")
	}
	if c.Model.MaxTokens <= 0 {
		return fmt.Errorf("model.max_tokens must be positive, got %d", c.Model.MaxTokens)
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be in [0, 1], got %v", c.Model.Temperature)
	}
	if c.Model.TopP <= 0 || c.Model.TopP > 1 {
		return fmt.Errorf("model.top_p must be in (0, 1], got %v", c.Model.TopP)
	}
	return nil
}
