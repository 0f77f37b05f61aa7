package companion

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"penpal/internal/llm"
)

// Fixed user-facing strings. Every remote-call boundary is a firewall:
// failure is always expressed as one of these values, never as an error
// escaping the orchestrator.
const (
	notConfiguredMsg = "I'm not configured yet. Add an API key in settings and I'll be right here."
	greetingApology  = "I wanted to say hello, but the words didn't come through."
	commentApology   = "(lost my train of thought)"
)

// ClientFactory builds a remote client from an opaque credential and the
// persona text baked into it.
type ClientFactory func(ctx context.Context, credential, persona string) (llm.Client, error)

// Archiver receives the transcript of a session being discarded.
type Archiver interface {
	SaveTranscript(id string, messages []Message) error
}

// Options configures an Orchestrator. Zero values get defaults.
type Options struct {
	DisplayName        string
	GreetingEnabled    bool
	CommentProbability float64
	DebounceDelay      time.Duration
	DisplayDuration    time.Duration

	// NewClient builds the remote client when a credential is installed.
	NewClient ClientFactory

	// Random overrides the uniform [0,1) source used by the trigger gate.
	Random func() float64

	// Archive, when set, receives transcripts of discarded sessions.
	Archive Archiver

	Logger *zap.Logger
}

// Orchestrator composes the detector, gate, session and presence machine
// behind a single façade. It is the sole writer of the presence string
// and the transcript.
type Orchestrator struct {
	opts   Options
	logger *zap.Logger

	gate     *TriggerGate
	presence *Presence

	mu         sync.Mutex // guards credential, client, session, detector
	credential string
	client     llm.Client
	session    *ConversationSession
	detector   *SignalDetector

	chatMu sync.Mutex // serializes interactive sends
}

// NewOrchestrator builds an orchestrator with no credential installed.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Random == nil {
		opts.Random = rand.Float64
	}
	if strings.TrimSpace(opts.DisplayName) == "" {
		opts.DisplayName = "Mira"
	}
	if opts.CommentProbability <= 0 {
		opts.CommentProbability = 0.1
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = 2 * time.Second
	}
	if opts.DisplayDuration <= 0 {
		opts.DisplayDuration = 20 * time.Second
	}

	o := &Orchestrator{
		opts:     opts,
		logger:   opts.Logger,
		gate:     NewTriggerGate(opts.CommentProbability, opts.Random),
		detector: NewSignalDetector(),
	}
	o.presence = NewPresence(o.idleMarker())
	return o
}

func (o *Orchestrator) idleMarker() string {
	return o.opts.DisplayName + " is here"
}

func (o *Orchestrator) thinkingMarker() string {
	return o.opts.DisplayName + " is thinking..."
}

// SetCredential installs, replaces or clears the remote client. Any
// existing session is archived and discarded; a new one is created
// lazily on the next interactive send. A client construction failure is
// logged and leaves the orchestrator unconfigured.
func (o *Orchestrator) SetCredential(ctx context.Context, credential string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.archiveAndDropSessionLocked()
	o.client = nil
	o.credential = strings.TrimSpace(credential)

	o.rebuildClientLocked(ctx)
}

// SetDisplayName changes the companion's name. The persona is fixed per
// client, so the client and session are rebuilt from the stored
// credential.
func (o *Orchestrator) SetDisplayName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.opts.DisplayName = name
	o.archiveAndDropSessionLocked()
	o.client = nil
	o.rebuildClientLocked(ctx)
}

func (o *Orchestrator) rebuildClientLocked(ctx context.Context) {
	if o.credential == "" || o.opts.NewClient == nil {
		return
	}
	client, err := o.opts.NewClient(ctx, o.credential, PersonaPrompt(o.opts.DisplayName))
	if err != nil {
		o.logger.Warn("remote client init failed", zap.Error(err))
		return
	}
	o.client = client
}

func (o *Orchestrator) archiveAndDropSessionLocked() {
	if o.session == nil {
		return
	}
	if o.opts.Archive != nil {
		if msgs := o.session.Transcript(); len(msgs) > 0 {
			id := o.session.ID().String()
			if err := o.opts.Archive.SaveTranscript(id, msgs); err != nil {
				o.logger.Warn("transcript archive failed",
					zap.String("session_id", id),
					zap.Error(err))
			}
		}
	}
	o.session = nil
}

// Configured reports whether a remote client is available.
func (o *Orchestrator) Configured() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.client != nil
}

// HandleReady seeds the edit snapshot from the initially open document
// and, when enabled and configured, fires the one-time greeting through
// the ambient presence machine.
func (o *Orchestrator) HandleReady(ctx context.Context, text string, cursorLine int) {
	o.mu.Lock()
	o.detector.Seed(text, cursorLine)
	configured := o.client != nil
	o.mu.Unlock()

	if !o.opts.GreetingEnabled || !configured {
		return
	}
	if !o.presence.TransitionIfIdle(PhaseThinking, o.thinkingMarker()) {
		return
	}
	go func() {
		o.showAmbient(o.RequestGreeting(ctx))
	}()
}

// HandleEdit processes one editor-change event: classify, gate, and when
// admitted run the three-phase presence transition around a debounced
// one-shot comment. A second signal arriving while a call is pending is
// dropped.
func (o *Orchestrator) HandleEdit(ctx context.Context, text string, cursorLine int) {
	o.mu.Lock()
	signal := o.detector.Observe(text, cursorLine)
	configured := o.client != nil
	o.mu.Unlock()

	context := ExtractContext(text, cursorLine)
	if !o.gate.Admit(signal, configured, o.presence.Phase(), context) {
		return
	}

	// Enter Thinking before arming the timer so the guard holds across
	// the debounce window, not just across the remote call.
	if !o.presence.TransitionIfIdle(PhaseThinking, o.thinkingMarker()) {
		return
	}

	o.logger.Debug("ambient comment admitted",
		zap.Int("cursor_line", cursorLine),
		zap.Int("context_len", len(context)))

	time.AfterFunc(o.opts.DebounceDelay, func() {
		o.showAmbient(o.RequestComment(ctx, context))
	})
}

// showAmbient displays a result, then reverts to idle after the fixed
// display duration. Callers must already hold the Thinking phase.
func (o *Orchestrator) showAmbient(text string) {
	o.presence.Set(PhaseShowing, text)
	time.AfterFunc(o.opts.DisplayDuration, func() {
		o.presence.Set(PhaseIdle, o.idleMarker())
	})
}

// RequestGreeting issues a one-shot, historyless greeting completion.
func (o *Orchestrator) RequestGreeting(ctx context.Context) string {
	return o.oneShot(ctx, GreetingPrompt(), greetingApology)
}

// RequestComment issues a one-shot, historyless comment completion about
// the given context. Ambient commentary never touches the interactive
// session's history.
func (o *Orchestrator) RequestComment(ctx context.Context, context string) string {
	return o.oneShot(ctx, CommentPrompt(context), commentApology)
}

func (o *Orchestrator) oneShot(ctx context.Context, prompt, apology string) string {
	o.mu.Lock()
	client := o.client
	o.mu.Unlock()

	if client == nil {
		return notConfiguredMsg
	}
	resp, err := client.Complete(ctx, prompt)
	if err != nil {
		o.logger.Warn("one-shot completion failed", zap.Error(err))
		return apology
	}
	return ExtractText(resp)
}

// SendInteractive routes a chat message through the persistent session,
// creating it lazily on first use. Sends are serialized; the reply is
// always a plain string, never an error.
func (o *Orchestrator) SendInteractive(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	o.chatMu.Lock()
	defer o.chatMu.Unlock()

	o.mu.Lock()
	client := o.client
	session := o.session
	o.mu.Unlock()

	if client == nil {
		return notConfiguredMsg
	}

	if session == nil {
		chat, err := client.NewChat(ctx)
		if err != nil {
			o.logger.Warn("chat session init failed", zap.Error(err))
			return chatApology
		}
		session = NewConversationSession(chat, o.logger)
		o.mu.Lock()
		o.session = session
		o.mu.Unlock()
		o.logger.Info("conversation session created",
			zap.String("session_id", session.ID().String()))
	}

	return session.Send(ctx, text)
}

// Transcript returns the current session's history, or nil when no
// session exists.
func (o *Orchestrator) Transcript() []Message {
	o.mu.Lock()
	session := o.session
	o.mu.Unlock()
	if session == nil {
		return nil
	}
	return session.Transcript()
}

// Presence returns the current presence string.
func (o *Orchestrator) Presence() string {
	return o.presence.Text()
}

// PresencePhase returns the ambient machine's current phase.
func (o *Orchestrator) PresencePhase() Phase {
	return o.presence.Phase()
}

// SubscribePresence registers a callback for presence updates.
func (o *Orchestrator) SubscribePresence(fn func(string)) {
	o.presence.Subscribe(fn)
}
