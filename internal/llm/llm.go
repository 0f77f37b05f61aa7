// Package llm is the boundary to the remote generative model. It exposes
// two call shapes: a one-shot, historyless completion and a persistent
// multi-turn chat whose canonical history lives on the remote side.
package llm

import (
	"context"

	"google.golang.org/genai"
)

// Completer issues one-shot completions that carry no prior turns.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// Chat is a persistent multi-turn dialogue with the model. History()
// returns the canonical transcript as the remote protocol reports it
// after each successful exchange.
type Chat interface {
	Send(ctx context.Context, text string) (*genai.GenerateContentResponse, error)
	History() []*genai.Content
}

// Client is the full remote-model surface the companion needs.
type Client interface {
	Completer
	NewChat(ctx context.Context) (Chat, error)
}
