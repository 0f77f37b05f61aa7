package companion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedDraw(v float64) func() float64 {
	return func() float64 { return v }
}

func TestTriggerGate_BoundaryDrawIsRejected(t *testing.T) {
	// Admission requires draw strictly below p.
	g := NewTriggerGate(0.01, fixedDraw(0.01))
	assert.False(t, g.Admit(true, true, PhaseIdle, "some context"))

	g = NewTriggerGate(0.01, fixedDraw(0.0099))
	assert.True(t, g.Admit(true, true, PhaseIdle, "some context"))
}

func TestTriggerGate_FalseSignalSkipsDraw(t *testing.T) {
	g := NewTriggerGate(1.0, func() float64 {
		t.Fatal("draw consulted for a false signal")
		return 0
	})
	assert.False(t, g.Admit(false, true, PhaseIdle, "some context"))
}

func TestTriggerGate_RejectsWithoutClient(t *testing.T) {
	g := NewTriggerGate(1.0, fixedDraw(0))
	assert.False(t, g.Admit(true, false, PhaseIdle, "some context"))
}

func TestTriggerGate_RejectsWhileBusy(t *testing.T) {
	g := NewTriggerGate(1.0, fixedDraw(0))
	assert.False(t, g.Admit(true, true, PhaseThinking, "some context"))
	assert.False(t, g.Admit(true, true, PhaseShowing, "some context"))
	assert.True(t, g.Admit(true, true, PhaseIdle, "some context"))
}

func TestTriggerGate_RejectsEmptyContext(t *testing.T) {
	g := NewTriggerGate(1.0, fixedDraw(0))
	assert.False(t, g.Admit(true, true, PhaseIdle, ""))
	assert.False(t, g.Admit(true, true, PhaseIdle, "   \n\t  "))
}

func TestExtractContext(t *testing.T) {
	doc := "one\ntwo\nthree\nfour\nfive\nsix\nseven"

	// Window ends at the cursor line inclusive, five lines deep.
	assert.Equal(t, "two\nthree\nfour\nfive\nsix", ExtractContext(doc, 5))

	// Clipped at document start.
	assert.Equal(t, "one\ntwo\nthree", ExtractContext(doc, 2))

	// Cursor beyond the last line clamps to the end.
	assert.Equal(t, "three\nfour\nfive\nsix\nseven", ExtractContext(doc, 40))

	// Negative cursor yields nothing.
	assert.Equal(t, "", ExtractContext(doc, -1))

	// Result is trimmed.
	assert.Equal(t, "abc", ExtractContext("\n\nabc\n\n", 3))
}
