package schemas

import "context"

// ModelInvoker is the contract the narrative generator depends on for the
// single model call it makes per run. The concrete Bedrock client lives in
// internal/bedrock; tests inject a mock.
//
// Invoke performs exactly one synchronous call with the fully prepared prompt
// and returns the decoded response, or an error if the call or decoding
// failed. Implementations do not retry and do not absorb failures; fallback
// policy belongs to the caller.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string) (*ModelResponse, error)
}
