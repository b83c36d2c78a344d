package schemas

// -- Model Response Schemas --

// ContentTypeText marks a response content block that carries generated text.
// Blocks of any other type are ignored during narrative extraction.
const ContentTypeText = "text"

// ContentBlock is one element of the content list a Claude messages-API
// response carries. Only blocks whose Type is "text" contribute to the
// extracted narrative.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ModelUsage reports token accounting from the model service.
type ModelUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ModelResponse is the decoded body of a successful invoke call.
//
// Content distinguishes "absent" from "present but empty": a nil slice means
// the response carried no content field at all (malformed), while a non-nil
// empty slice means the field was present with zero blocks.
type ModelResponse struct {
	ID         string         `json:"id,omitempty"`
	Model      string         `json:"model,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *ModelUsage    `json:"usage,omitempty"`
}
