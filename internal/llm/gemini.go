package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini-backed client. Persona, temperature
// and max output tokens are fixed for the lifetime of the client; a
// persona change requires constructing a new client.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Persona         string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultGeminiConfig returns sensible defaults for the given key.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:          apiKey,
		Model:           "gemini-2.5-flash",
		Temperature:     0.8,
		MaxOutputTokens: 256,
	}
}

// Gemini talks to the Gemini API through the official genai SDK.
type Gemini struct {
	client *genai.Client
	cfg    GeminiConfig
}

// NewGemini creates a Gemini client.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 256
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, cfg: cfg}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.cfg.Model
}

func (g *Gemini) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens: g.cfg.MaxOutputTokens,
	}
	if g.cfg.Persona != "" {
		cfg.SystemInstruction = genai.NewContentFromText(g.cfg.Persona, genai.RoleUser)
	}
	return cfg
}

// Complete issues a single stateless completion.
func (g *Gemini) Complete(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), g.generateConfig())
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}
	return resp, nil
}

// NewChat opens a fresh multi-turn session with no prior history.
func (g *Gemini) NewChat(ctx context.Context) (Chat, error) {
	chat, err := g.client.Chats.Create(ctx, g.cfg.Model, g.generateConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini chat: %w", err)
	}
	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, text string) (*genai.GenerateContentResponse, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("gemini chat send failed: %w", err)
	}
	return resp, nil
}

func (c *geminiChat) History() []*genai.Content {
	return c.chat.History(false)
}
