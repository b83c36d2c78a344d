package narrative

import (
	"context"

	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/api/schemas"
)

// Generator sequences the narrative pipeline: build the prompt, make the one
// model call, extract the text. It is stateless apart from its injected
// collaborators, so a single Generator is safe for concurrent use.
type Generator struct {
	invoker schemas.ModelInvoker
	logger  *zap.Logger
}

// NewGenerator wires a Generator to a model invoker. The invoker may be nil,
// in which case every Generate call yields the static fallback.
func NewGenerator(invoker schemas.ModelInvoker, logger *zap.Logger) *Generator {
	return &Generator{
		invoker: invoker,
		logger:  logger.Named("narrative"),
	}
}

// Generate produces the narrative for the given findings. It never returns an
// error: any failure in the model call or its response is logged and absorbed
// by substituting the static fallback narrative, so a broken model
// integration can never block the surrounding reporting pipeline.
func (g *Generator) Generate(ctx context.Context, findings []schemas.Finding) string {
	g.logger.Info("Preparing model prompt from security findings.",
		zap.Int("finding_count", len(findings)))
	prompt := BuildPrompt(findings)

	if g.invoker == nil {
		g.logger.Warn("No model invoker configured; using fallback narrative.")
		return FallbackNarrative()
	}

	g.logger.Info("Invoking model for narrative generation.")
	resp, err := g.invoker.Invoke(ctx, prompt)
	if err != nil {
		g.logger.Error("Model invocation failed; using fallback narrative.", zap.Error(err))
		return FallbackNarrative()
	}

	g.logger.Info("Processing model response.")
	if resp == nil || resp.Content == nil {
		g.logger.Error("Model response missing content; using fallback narrative.",
			zap.Any("response", resp))
	}
	text := ExtractNarrative(resp)

	g.logger.Info("Narrative generation complete.", zap.Int("narrative_bytes", len(text)))
	return text
}
