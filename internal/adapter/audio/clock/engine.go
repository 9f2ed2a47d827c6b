// Package clock provides the production AudioEngine implementation.
//
// The browser owns the actual audio device: it streams the preview URL and
// produces sound. The server's engine is pure bookkeeping: it tracks when
// playback started, how much of the preview window remains, and enforces
// the preview limit, so the match engine has one authoritative playback
// state regardless of what the client does.
package clock

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// Engine tracks preview playback against the wall clock.
//
// Thread-safety: this implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu         sync.RWMutex
	previews   map[domain.PreviewHandle]*preview
	nextHandle domain.PreviewHandle

	// now is the clock source, swappable in tests.
	now func() time.Time
}

// preview is one loaded preview's playback state.
type preview struct {
	url       string
	playing   bool
	startedAt time.Time
}

// NewEngine creates a new wall-clock preview engine.
func NewEngine() *Engine {
	return &Engine{
		previews:   make(map[domain.PreviewHandle]*preview),
		nextHandle: 1,
		now:        time.Now,
	}
}

// SetLogger sets the logger for this engine.
func (e *Engine) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
}

// SetClock replaces the wall-clock source. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// Load registers a preview URL and returns a handle to it.
func (e *Engine) Load(previewURL string) (domain.PreviewHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	handle := e.nextHandle
	e.nextHandle++
	e.previews[handle] = &preview{url: previewURL}

	if e.logger != nil {
		e.logger.Debug("preview loaded", slog.Int64("handle", int64(handle)))
	}
	return handle, nil
}

// Unload releases a previously loaded preview, stopping it first.
func (e *Engine) Unload(handle domain.PreviewHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.previews[handle]; !ok {
		return domain.ErrInvalidPreviewHandle
	}
	delete(e.previews, handle)
	return nil
}

// Play marks playback started at the current wall-clock time.
func (e *Engine) Play(handle domain.PreviewHandle, offset time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.previews[handle]
	if !ok {
		return domain.ErrInvalidPreviewHandle
	}

	p.playing = true
	p.startedAt = e.now()

	if e.logger != nil {
		e.logger.Debug("preview playing",
			slog.Int64("handle", int64(handle)),
			slog.Duration("offset", offset))
	}
	return nil
}

// Stop halts playback. Stopping a stopped preview is a no-op.
func (e *Engine) Stop(handle domain.PreviewHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.previews[handle]
	if !ok {
		return domain.ErrInvalidPreviewHandle
	}
	p.playing = false
	return nil
}

// Playing reports whether the preview is inside its playback window.
// A preview whose window elapsed past the limit reads as stopped.
func (e *Engine) Playing(handle domain.PreviewHandle) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.previews[handle]
	if !ok || !p.playing {
		return false
	}
	return e.now().Sub(p.startedAt) < domain.PreviewLimit
}

// Elapsed returns the wall-clock play time, clamped to domain.PreviewLimit.
func (e *Engine) Elapsed(handle domain.PreviewHandle) (time.Duration, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.previews[handle]
	if !ok {
		return 0, domain.ErrInvalidPreviewHandle
	}
	if !p.playing {
		return 0, nil
	}

	elapsed := e.now().Sub(p.startedAt)
	if elapsed > domain.PreviewLimit {
		return domain.PreviewLimit, nil
	}
	return elapsed, nil
}

// Shutdown stops all playback and releases every loaded preview.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.previews = make(map[domain.PreviewHandle]*preview)
	return nil
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
