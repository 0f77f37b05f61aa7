package companion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationSession_SuccessAdoptsCanonicalHistory(t *testing.T) {
	chat := &fakeChat{reply: "nice to meet you"}
	s := NewConversationSession(chat, nil)

	reply := s.Send(context.Background(), "hi")
	assert.Equal(t, "nice to meet you", reply)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, Message{Role: RoleUser, Text: "hi"}, transcript[0])
	assert.Equal(t, Message{Role: RoleCompanion, Text: "nice to meet you"}, transcript[1])

	// A second turn keeps extending the canonical history.
	s.Send(context.Background(), "how are you?")
	assert.Len(t, s.Transcript(), 4)
}

func TestConversationSession_FallsBackToLocalAppend(t *testing.T) {
	chat := &fakeChat{reply: "still here", noHist: true}
	s := NewConversationSession(chat, nil)

	s.Send(context.Background(), "hello?")

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, RoleUser, transcript[0].Role)
	assert.Equal(t, RoleCompanion, transcript[1].Role)
}

func TestConversationSession_FailureIsNonMutating(t *testing.T) {
	chat := &fakeChat{reply: "ok"}
	s := NewConversationSession(chat, nil)

	s.Send(context.Background(), "first")
	require.Len(t, s.Transcript(), 2)

	chat.sendErr = errors.New("connection reset")
	reply := s.Send(context.Background(), "second")

	assert.Equal(t, chatApology, reply)
	assert.Len(t, s.Transcript(), 2, "failed round-trip must not record anything")
}

func TestConversationSession_FailureOnFirstTurnLeavesTranscriptEmpty(t *testing.T) {
	chat := &fakeChat{sendErr: errors.New("boom")}
	s := NewConversationSession(chat, nil)

	assert.Equal(t, chatApology, s.Send(context.Background(), "hello"))
	assert.Empty(t, s.Transcript())
}

func TestConversationSession_DistinctIDs(t *testing.T) {
	a := NewConversationSession(&fakeChat{}, nil)
	b := NewConversationSession(&fakeChat{}, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}
