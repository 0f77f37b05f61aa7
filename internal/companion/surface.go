package companion

import (
	"context"
	"sync"
)

// StatusView is a render-agnostic view-model over the presence string:
// the ambient surface reads Current and subscribes to OnUpdate, and the
// core never learns how the string is displayed.
type StatusView struct {
	o *Orchestrator
}

// NewStatusView wraps the orchestrator's presence channel.
func NewStatusView(o *Orchestrator) *StatusView {
	return &StatusView{o: o}
}

// Current returns the presence string as of now.
func (v *StatusView) Current() string {
	return v.o.Presence()
}

// OnUpdate registers a callback for every presence change.
func (v *StatusView) OnUpdate(fn func(string)) {
	v.o.SubscribePresence(fn)
}

// ChatView is a render-agnostic view-model over the interactive chat.
type ChatView struct {
	o *Orchestrator

	mu       sync.Mutex
	onAppend []func(Message)
}

// NewChatView wraps the orchestrator's interactive surface.
func NewChatView(o *Orchestrator) *ChatView {
	return &ChatView{o: o}
}

// Transcript returns the full conversation history for initial rendering.
func (v *ChatView) Transcript() []Message {
	return v.o.Transcript()
}

// OnAppend registers a callback invoked for each message the view should
// display, in order.
func (v *ChatView) OnAppend(fn func(Message)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onAppend = append(v.onAppend, fn)
}

// Send forwards a user message to the companion and notifies subscribers
// with both sides of the exchange. Empty input is ignored.
func (v *ChatView) Send(ctx context.Context, text string) string {
	reply := v.o.SendInteractive(ctx, text)
	if reply == "" {
		return ""
	}

	v.mu.Lock()
	subs := make([]func(Message), len(v.onAppend))
	copy(subs, v.onAppend)
	v.mu.Unlock()

	for _, fn := range subs {
		fn(Message{Role: RoleUser, Text: text})
		fn(Message{Role: RoleCompanion, Text: reply})
	}
	return reply
}
