package companion

import "sync"

// Phase is the explicit state of the ambient-commentary machine. The
// re-entrancy guard keys off this enum, never off the display text.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseThinking
	PhaseShowing
)

func (p Phase) String() string {
	switch p {
	case PhaseThinking:
		return "thinking"
	case PhaseShowing:
		return "showing"
	default:
		return "idle"
	}
}

// Presence owns the single externally visible status string and its
// phase. It has no history; every update overwrites the last.
type Presence struct {
	mu    sync.Mutex
	phase Phase
	text  string
	subs  []func(string)
}

// NewPresence starts in the idle phase with the given display text.
func NewPresence(idleText string) *Presence {
	return &Presence{phase: PhaseIdle, text: idleText}
}

// Set transitions to the given phase and display text, notifying
// subscribers.
func (p *Presence) Set(phase Phase, text string) {
	p.mu.Lock()
	p.phase = phase
	p.text = text
	subs := make([]func(string), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(text)
	}
}

// TransitionIfIdle enters the given phase only when currently idle.
// Returns false when another ambient call already holds the machine.
func (p *Presence) TransitionIfIdle(phase Phase, text string) bool {
	p.mu.Lock()
	if p.phase != PhaseIdle {
		p.mu.Unlock()
		return false
	}
	p.phase = phase
	p.text = text
	subs := make([]func(string), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(text)
	}
	return true
}

// Phase returns the current phase.
func (p *Presence) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Text returns the current display string.
func (p *Presence) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// Subscribe registers a callback invoked on every update.
func (p *Presence) Subscribe(fn func(string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}
