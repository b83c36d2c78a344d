package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/internal/config"
)

func TestGetConfigFromContext(t *testing.T) {
	cfg := config.Config{Model: config.ModelConfig{ModelID: "test-model"}}
	ctx := context.WithValue(context.Background(), configKey, cfg)

	got, err := getConfigFromContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, "test-model", got.Model.ModelID)
}

func TestGetConfigFromContext_Missing(t *testing.T) {
	_, err := getConfigFromContext(context.Background())

	require.Error(t, err)
}

func TestDefaultInvokerProvider_NoKeyMeansNoInvoker(t *testing.T) {
	p := &defaultInvokerProvider{}

	invoker, err := p.Create(config.ModelConfig{ModelID: "m"}, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, invoker)
}

func TestDefaultInvokerProvider_DisabledMeansNoInvoker(t *testing.T) {
	p := &defaultInvokerProvider{}

	invoker, err := p.Create(config.ModelConfig{ModelID: "m", APIKey: "k", Disabled: true}, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, invoker)
}

func TestDefaultInvokerProvider_BuildsClient(t *testing.T) {
	p := &defaultInvokerProvider{}

	invoker, err := p.Create(config.ModelConfig{
		ModelID: "anthropic.claude-3-haiku-20240307-v1:0",
		APIKey:  "k",
		Region:  "us-east-1",
	}, zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, invoker)
}
