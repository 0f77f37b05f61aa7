package companion

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"penpal/internal/llm"
)

// textResponse builds a successful completion response carrying one text
// part, the way the transport delivers real replies.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  string(genai.RoleModel),
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

// fakeChat simulates the remote multi-turn protocol, including the
// canonical history it returns after each successful exchange.
type fakeChat struct {
	mu      sync.Mutex
	reply   string
	sendErr error
	noHist  bool // simulate a transport that returns no history
	sent    []string
	history []*genai.Content
}

func (c *fakeChat) Send(_ context.Context, text string) (*genai.GenerateContentResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return nil, c.sendErr
	}
	c.sent = append(c.sent, text)
	if !c.noHist {
		c.history = append(c.history,
			genai.NewContentFromText(text, genai.RoleUser),
			genai.NewContentFromText(c.reply, genai.RoleModel))
	}
	return textResponse(c.reply), nil
}

func (c *fakeChat) History() []*genai.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*genai.Content, len(c.history))
	copy(out, c.history)
	return out
}

// fakeClient satisfies llm.Client without a network.
type fakeClient struct {
	mu           sync.Mutex
	completeResp *genai.GenerateContentResponse
	completeErr  error
	completes    int
	prompts      []string
	chat         *fakeChat
	chatErr      error
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completes++
	f.prompts = append(f.prompts, prompt)
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return f.completeResp, nil
}

func (f *fakeClient) NewChat(_ context.Context) (llm.Chat, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if f.chat == nil {
		f.chat = &fakeChat{reply: "hello there"}
	}
	return f.chat, nil
}

func (f *fakeClient) completeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completes
}

func (f *fakeClient) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// factoryFor returns a ClientFactory handing out the given client.
func factoryFor(client llm.Client) ClientFactory {
	return func(context.Context, string, string) (llm.Client, error) {
		return client, nil
	}
}

// recordingArchiver captures archived transcripts.
type recordingArchiver struct {
	mu    sync.Mutex
	saved map[string][]Message
}

func newRecordingArchiver() *recordingArchiver {
	return &recordingArchiver{saved: make(map[string][]Message)}
}

func (a *recordingArchiver) SaveTranscript(id string, messages []Message) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved[id] = messages
	return nil
}

func (a *recordingArchiver) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.saved)
}
