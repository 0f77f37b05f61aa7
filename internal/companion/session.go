package companion

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"penpal/internal/llm"
)

// chatApology is returned verbatim whenever a session round-trip fails.
const chatApology = "Sorry, something went wrong on my end. Could you say that again?"

// ConversationSession owns the single ongoing multi-turn dialogue. Its
// transcript tracks the canonical history the remote protocol reports;
// a failed round-trip leaves the transcript byte-for-byte unchanged.
// Persona and tuning are fixed at construction; resetting means building
// a new session, never mutating this one.
type ConversationSession struct {
	id     uuid.UUID
	chat   llm.Chat
	logger *zap.Logger

	mu         sync.Mutex
	transcript []Message
}

// NewConversationSession wraps a fresh remote chat.
func NewConversationSession(chat llm.Chat, logger *zap.Logger) *ConversationSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationSession{
		id:     uuid.New(),
		chat:   chat,
		logger: logger,
	}
}

// ID identifies this session instance, e.g. as an archive key.
func (s *ConversationSession) ID() uuid.UUID {
	return s.id
}

// Send dispatches one user turn and returns the companion's reply.
// userText must be non-empty after trimming; the caller guards that.
// On failure the fixed apology is returned and no message is recorded.
// On success the transcript adopts the canonical history returned by the
// transport, falling back to a local append of the exchanged pair when
// the transport yields none.
func (s *ConversationSession) Send(ctx context.Context, userText string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.chat.Send(ctx, userText)
	if err != nil {
		s.logger.Warn("session send failed",
			zap.String("session_id", s.id.String()),
			zap.Error(err))
		return chatApology
	}

	reply := ExtractText(resp)
	if history := transcriptFromContents(s.chat.History()); len(history) > 0 {
		s.transcript = history
	} else {
		s.transcript = append(s.transcript,
			Message{Role: RoleUser, Text: userText},
			Message{Role: RoleCompanion, Text: reply})
	}
	return reply
}

// Transcript returns a copy of the current conversation history.
func (s *ConversationSession) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
