// Package host is the boundary to the editing environment. The companion
// core consumes change notifications carrying the full document text and
// the cursor line, plus a single ready signal once the initial document
// is available; it never learns what kind of editor produced them.
package host

import "context"

// ChangeEvent carries the document state delivered by the editing host.
type ChangeEvent struct {
	Text       string
	CursorLine int
}

// Host delivers editing activity to registered callbacks. Callbacks must
// be registered before Start.
type Host interface {
	OnReady(fn func(ChangeEvent))
	OnChange(fn func(ChangeEvent))
	Start(ctx context.Context) error
	Stop()
}
