// Package bedrock holds the HTTP client for the Bedrock runtime invoke API.
// It makes exactly one attempt per call; retry and fallback policy live with
// the caller.
package bedrock

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/api/schemas"
	"github.com/seceng-tools/access-review/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// analystPreamble is the fixed instruction prepended to every prompt. The
// four numbered sections define the report structure the model must produce.
const analystPreamble = "You are a cybersecurity expert analyzing AWS security findings. " +
	"Generate a concise, professional security report based on the following findings:\n\n"

const analystInstructions = "\n\nYour report should include:\n" +
	"1. An executive summary of the security posture\n" +
	"2. Analysis of the most critical findings\n" +
	"3. Clear, actionable recommendations\n" +
	"4. Compliance implications\n\n" +
	"Format the report with clear headings and concise language suitable for both " +
	"technical and non-technical stakeholders."

// -- Bedrock Messages API Request Structures (internal to this package) --

type invokeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	Messages         []invokeMessage `json:"messages"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature"`
	TopP             float64         `json:"top_p"`
}

// Client implements schemas.ModelInvoker against a Bedrock runtime endpoint
// using bearer-token authentication.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	cfg        config.ModelConfig
}

// New initializes the client. The endpoint defaults to the regional Bedrock
// runtime host when not overridden in the configuration.
func New(cfg config.ModelConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("bedrock API key is required")
	}
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("bedrock model ID is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://bedrock-runtime.%s.amazonaws.com", cfg.Region)
	}

	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		cfg:      cfg,
		httpClient: &http.Client{
			Timeout: cfg.APITimeout,
		},
		logger: logger.Named("bedrock"),
	}, nil
}

// Invoke sends the prepared prompt to the configured model and returns the
// decoded response. Any transport, status, or decode failure comes back as an
// error; nothing is retried or absorbed here.
func (c *Client) Invoke(ctx context.Context, prompt string) (*schemas.ModelResponse, error) {
	payload := invokeRequest{
		AnthropicVersion: c.cfg.AnthropicVersion,
		Messages: []invokeMessage{
			{
				Role:    "user",
				Content: analystPreamble + prompt + analystInstructions,
			},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoke payload: %w", err)
	}

	invokeURL := fmt.Sprintf("%s/model/%s/invoke", c.endpoint, url.PathEscape(c.cfg.ModelID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, invokeURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info("Calling Bedrock invoke API.",
		zap.String("model_id", c.cfg.ModelID),
		zap.Int("prompt_bytes", len(prompt)))

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("failed to execute invoke request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoke response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Bedrock API returned error status.",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody))
		return nil, fmt.Errorf("bedrock API error: status %d, body: %s", resp.StatusCode, respBody)
	}

	var modelResp schemas.ModelResponse
	if err := json.Unmarshal(respBody, &modelResp); err != nil {
		return nil, fmt.Errorf("failed to decode invoke response: %w", err)
	}

	fields := []zap.Field{
		zap.Duration("duration", duration),
		zap.Int("content_parts", len(modelResp.Content)),
		zap.String("stop_reason", modelResp.StopReason),
	}
	if modelResp.Usage != nil {
		fields = append(fields,
			zap.Int("input_tokens", modelResp.Usage.InputTokens),
			zap.Int("output_tokens", modelResp.Usage.OutputTokens))
	}
	c.logger.Info("Received Bedrock response.", fields...)

	return &modelResp, nil
}
