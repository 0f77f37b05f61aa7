package host

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileHost adapts a single file on disk into an editing host: every save
// becomes a change event whose cursor line is approximated as the last
// line of the document. It watches the parent directory rather than the
// file itself so editors that save via rename keep working.
type FileHost struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	path      string
	debounce  time.Duration
	lastFire  time.Time
	readyFns  []func(ChangeEvent)
	changeFns []func(ChangeEvent)
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
	logger    *zap.Logger

	stats FileHostStats
}

// FileHostStats tracks watcher activity for debugging.
type FileHostStats struct {
	EventsSeen        int
	ChangesDelivered  int
	Errors            int
	LastEventTime     time.Time
}

// NewFileHost creates a host for the given document path.
func NewFileHost(path string, debounce time.Duration, logger *zap.Logger) (*FileHost, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileHost{
		watcher:  watcher,
		path:     abs,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}, nil
}

// OnReady registers a callback fired once with the initial document.
func (h *FileHost) OnReady(fn func(ChangeEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readyFns = append(h.readyFns, fn)
}

// OnChange registers a callback fired on every document save.
func (h *FileHost) OnChange(fn func(ChangeEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changeFns = append(h.changeFns, fn)
}

// Start begins watching. Non-blocking; the ready signal fires before
// Start returns so the companion can seed its snapshot.
func (h *FileHost) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return nil
	}
	h.running = true
	h.mu.Unlock()

	if err := h.watcher.Add(filepath.Dir(h.path)); err != nil {
		return err
	}

	ev := h.snapshot()
	h.mu.Lock()
	readyFns := make([]func(ChangeEvent), len(h.readyFns))
	copy(readyFns, h.readyFns)
	h.mu.Unlock()
	for _, fn := range readyFns {
		fn(ev)
	}

	go h.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to drain.
func (h *FileHost) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.stopCh)
	<-h.doneCh
	_ = h.watcher.Close()
}

// Stats returns a copy of the activity counters.
func (h *FileHost) Stats() FileHostStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

func (h *FileHost) run(ctx context.Context) {
	defer close(h.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stopCh:
			return
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			h.handleEvent(event)
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.mu.Lock()
			h.stats.Errors++
			h.mu.Unlock()
			h.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (h *FileHost) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != h.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	h.mu.Lock()
	h.stats.EventsSeen++
	h.stats.LastEventTime = time.Now()
	if time.Since(h.lastFire) < h.debounce {
		h.mu.Unlock()
		return
	}
	h.lastFire = time.Now()
	changeFns := make([]func(ChangeEvent), len(h.changeFns))
	copy(changeFns, h.changeFns)
	h.mu.Unlock()

	ev := h.snapshot()
	h.mu.Lock()
	h.stats.ChangesDelivered++
	h.mu.Unlock()

	for _, fn := range changeFns {
		fn(ev)
	}
}

// snapshot reads the document and approximates the cursor as its last
// line index.
func (h *FileHost) snapshot() ChangeEvent {
	data, err := os.ReadFile(h.path)
	if err != nil {
		h.logger.Warn("document read failed", zap.String("path", h.path), zap.Error(err))
		return ChangeEvent{}
	}
	text := string(data)
	return ChangeEvent{
		Text:       text,
		CursorLine: strings.Count(text, "\n"),
	}
}
