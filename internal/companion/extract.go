package companion

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const finishReasonUnknown = "UNKNOWN"

// ExtractText pulls usable text out of a completion response. It prefers
// the response's convenience text, falls back to the first candidate's
// first content part, and when both are empty synthesizes a diagnostic
// placeholder embedding the reported finish reason. An empty-but-
// successful response is never treated as an error.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp != nil {
		if t := strings.TrimSpace(resp.Text()); t != "" {
			return t
		}
		if len(resp.Candidates) > 0 {
			cand := resp.Candidates[0]
			if cand != nil && cand.Content != nil && len(cand.Content.Parts) > 0 && cand.Content.Parts[0] != nil {
				if t := strings.TrimSpace(cand.Content.Parts[0].Text); t != "" {
					return t
				}
			}
		}
	}

	reason := finishReasonUnknown
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].FinishReason != "" {
		reason = string(resp.Candidates[0].FinishReason)
	}
	return fmt.Sprintf("[no response: finish reason %s]", reason)
}
