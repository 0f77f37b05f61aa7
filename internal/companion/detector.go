package companion

// EditSnapshot is the last-observed document state, kept only for delta
// comparison against the next editor-change event.
type EditSnapshot struct {
	TextLength int
	CursorLine int
}

// SignalDetector classifies raw editor-change events into a discrete
// "committed paragraph" signal: the cursor moved to a later line AND the
// document grew. That approximates the user pressing Enter to finish a
// line while rejecting deletions, in-place pastes and cursor-only
// navigation. A multi-line paste that grows the text and advances the
// cursor is indistinguishable from Enter; that imprecision is accepted.
type SignalDetector struct {
	snap   EditSnapshot
	seeded bool
}

// NewSignalDetector returns an unseeded detector. Until Seed or the first
// Observe call, no signal can fire.
func NewSignalDetector() *SignalDetector {
	return &SignalDetector{}
}

// Seed primes the snapshot from the currently open document so the first
// real edit is compared against genuine prior state, not zero values.
func (d *SignalDetector) Seed(text string, cursorLine int) {
	d.snap = EditSnapshot{TextLength: len(text), CursorLine: cursorLine}
	d.seeded = true
}

// Observe classifies one editor-change event. The snapshot is updated
// unconditionally, exactly once per call, whatever the outcome. An
// observation against an unseeded snapshot seeds it and is suppressed.
func (d *SignalDetector) Observe(text string, cursorLine int) bool {
	prev := d.snap
	d.snap = EditSnapshot{TextLength: len(text), CursorLine: cursorLine}
	if !d.seeded {
		d.seeded = true
		return false
	}
	return cursorLine > prev.CursorLine && len(text) > prev.TextLength
}

// Snapshot returns the last-observed state.
func (d *SignalDetector) Snapshot() EditSnapshot {
	return d.snap
}
