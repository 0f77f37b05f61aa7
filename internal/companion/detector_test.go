package companion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func textOfLen(n int) string {
	return strings.Repeat("a", n)
}

func TestSignalDetector_TruthTable(t *testing.T) {
	cases := []struct {
		name     string
		prevLen  int
		prevLine int
		newLen   int
		newLine  int
		want     bool
	}{
		{"line up and length up", 100, 5, 110, 6, true},
		{"line up, length down", 100, 5, 95, 6, false},
		{"line up, length equal", 100, 5, 100, 6, false},
		{"line equal, length up", 100, 5, 110, 5, false},
		{"line down, length up", 100, 5, 110, 4, false},
		{"both down", 100, 5, 90, 4, false},
		{"both equal", 100, 5, 100, 5, false},
		{"multi-line paste counts as commit", 100, 5, 300, 12, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewSignalDetector()
			d.Seed(textOfLen(tc.prevLen), tc.prevLine)
			got := d.Observe(textOfLen(tc.newLen), tc.newLine)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSignalDetector_FirstObservationSuppressed(t *testing.T) {
	d := NewSignalDetector()

	// Growth relative to the zero snapshot must not count: the snapshot
	// was never seeded from a real document.
	assert.False(t, d.Observe(textOfLen(50), 3))

	// But the suppressed observation still seeded the snapshot.
	assert.True(t, d.Observe(textOfLen(60), 4))
}

func TestSignalDetector_SnapshotUpdatedOnRejection(t *testing.T) {
	d := NewSignalDetector()
	d.Seed(textOfLen(100), 5)

	assert.False(t, d.Observe(textOfLen(90), 6)) // rejected: shrank
	assert.Equal(t, EditSnapshot{TextLength: 90, CursorLine: 6}, d.Snapshot())

	// The next event is compared against the updated snapshot.
	assert.True(t, d.Observe(textOfLen(95), 7))
}
