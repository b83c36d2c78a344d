package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViperWithDefaults() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViperWithDefaults())

	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "access-review", cfg.Logger.ServiceName)

	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Model.ModelID)
	assert.Equal(t, "bedrock-2023-05-31", cfg.Model.AnthropicVersion)
	assert.Equal(t, 4096, cfg.Model.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Model.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.Model.TopP, 1e-9)
	assert.Equal(t, "us-east-1", cfg.Model.Region)
	assert.Equal(t, time.Duration(0), cfg.Model.APITimeout,
		"no explicit call timeout unless configured")
	assert.False(t, cfg.Model.Disabled)
	assert.Empty(t, cfg.Model.APIKey)

	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, "access-review", cfg.Report.S3.Prefix)
	assert.True(t, cfg.Report.S3.UseSSL)
}

func TestLoad_Overrides(t *testing.T) {
	v := newViperWithDefaults()
	v.Set("model.model_id", "anthropic.claude-3-sonnet-20240229-v1:0")
	v.Set("model.max_tokens", 2048)
	v.Set("model.api_timeout", "90s")
	v.Set("logger.level", "debug")

	cfg, err := Load(v)

	require.NoError(t, err)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.Model.ModelID)
	assert.Equal(t, 2048, cfg.Model.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.Model.APITimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*viper.Viper)
		wantErr string
	}{
		{"empty model id", func(v *viper.Viper) { v.Set("model.model_id", "") }, "model_id"},
		{"empty protocol tag", func(v *viper.Viper) { v.Set("model.anthropic_version", "") }, "anthropic_version"},
		{"zero max tokens", func(v *viper.Viper) { v.Set("model.max_tokens", 0) }, "max_tokens"},
		{"negative temperature", func(v *viper.Viper) { v.Set("model.temperature", -0.1) }, "temperature"},
		{"temperature above one", func(v *viper.Viper) { v.Set("model.temperature", 1.5) }, "temperature"},
		{"zero top_p", func(v *viper.Viper) { v.Set("model.top_p", 0.0) }, "top_p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViperWithDefaults()
			tt.mutate(v)

			_, err := Load(v)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
