package companion

import "strings"

// contextLineWindow is how many lines, ending at the cursor line, feed an
// ambient comment.
const contextLineWindow = 5

// TriggerGate decides whether a committed-paragraph signal becomes a
// remote call. Admission requires, in order: a true signal, a configured
// remote client, a random draw strictly below the configured probability,
// a non-empty context window and an idle presence machine. At most one
// ambient call may be outstanding; excess signals are dropped, never
// queued.
type TriggerGate struct {
	probability float64
	draw        func() float64
}

// NewTriggerGate builds a gate with the given admission probability and
// a uniform [0,1) random source.
func NewTriggerGate(probability float64, draw func() float64) *TriggerGate {
	return &TriggerGate{probability: probability, draw: draw}
}

// Admit reports whether the current signal should produce a remote call.
func (g *TriggerGate) Admit(signal, configured bool, phase Phase, context string) bool {
	if !signal || !configured {
		return false
	}
	if g.draw() >= g.probability {
		return false
	}
	if strings.TrimSpace(context) == "" {
		return false
	}
	if phase != PhaseIdle {
		return false
	}
	return true
}

// ExtractContext returns up to contextLineWindow lines ending at the
// cursor line (inclusive), clipped at the document start, joined and
// trimmed.
func ExtractContext(text string, cursorLine int) string {
	lines := strings.Split(text, "\n")
	if cursorLine >= len(lines) {
		cursorLine = len(lines) - 1
	}
	if cursorLine < 0 {
		return ""
	}
	start := cursorLine - contextLineWindow + 1
	if start < 0 {
		start = 0
	}
	return strings.TrimSpace(strings.Join(lines[start:cursorLine+1], "\n"))
}
