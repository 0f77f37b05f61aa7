// Package companion implements the conversational companion core: the
// edit-signal detector, the probabilistic trigger gate, the persistent
// conversation session and the orchestrator that ties them to a remote
// model behind a presence string and a chat transcript.
package companion

import (
	"strings"

	"google.golang.org/genai"
)

// Role tags who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleCompanion Role = "companion"
)

// Message is one turn of the conversation.
type Message struct {
	Role Role
	Text string
}

// transcriptFromContents converts the remote protocol's canonical history
// into the companion's transcript form. The remote "model" role maps to
// the companion; everything else is attributed to the user. Turns with no
// text (pure function-call parts and the like) are dropped.
func transcriptFromContents(contents []*genai.Content) []Message {
	out := make([]Message, 0, len(contents))
	for _, content := range contents {
		if content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		text := sb.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		role := RoleUser
		if content.Role == string(genai.RoleModel) {
			role = RoleCompanion
		}
		out = append(out, Message{Role: role, Text: text})
	}
	return out
}
