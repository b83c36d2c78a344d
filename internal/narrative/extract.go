package narrative

import (
	"strings"

	"github.com/seceng-tools/access-review/api/schemas"
)

// ExtractNarrative assembles the narrative text from a decoded model
// response: the text of every "text"-typed content block, concatenated in
// order and trimmed of surrounding whitespace.
//
// A nil response or one without a content field counts as malformed and
// yields the static fallback narrative from this layer; a present-but-empty
// content list yields an empty string.
func ExtractNarrative(resp *schemas.ModelResponse) string {
	if resp == nil || resp.Content == nil {
		return FallbackNarrative()
	}

	var b strings.Builder
	for _, part := range resp.Content {
		if part.Type == schemas.ContentTypeText {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
