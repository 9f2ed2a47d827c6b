// Package mock provides a mock implementation of the AudioEngine interface.
// It simulates preview playback in memory under a manually advanced clock,
// which lets tests drive playback deterministically.
package mock

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// Engine is a mock implementation of the AudioEngine interface.
//
// Thread-safety: this implementation is thread-safe.
type Engine struct {
	logger *slog.Logger

	mu         sync.RWMutex
	previews   map[domain.PreviewHandle]*mockPreview
	nextHandle domain.PreviewHandle

	// Behavior configuration (for testing error scenarios)
	failLoad bool
	failPlay bool
}

// mockPreview represents a loaded preview in the mock engine.
type mockPreview struct {
	url     string
	playing bool
	elapsed time.Duration
}

// NewEngine creates a new mock audio engine.
func NewEngine() *Engine {
	return &Engine{
		previews:   make(map[domain.PreviewHandle]*mockPreview),
		nextHandle: 1,
	}
}

// SetLogger sets the logger for this engine.
func (m *Engine) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// SetFailLoad configures the mock to fail loading previews (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Load registers a preview URL and returns a handle to it.
func (m *Engine) Load(previewURL string) (domain.PreviewHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLoad {
		return domain.InvalidPreviewHandle, domain.NewServiceError("MockEngine", "Load", "mock load failure", nil)
	}

	handle := m.nextHandle
	m.nextHandle++
	m.previews[handle] = &mockPreview{url: previewURL}
	return handle, nil
}

// Unload releases a previously loaded preview.
func (m *Engine) Unload(handle domain.PreviewHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.previews[handle]; !ok {
		return domain.ErrInvalidPreviewHandle
	}
	delete(m.previews, handle)
	return nil
}

// Play starts simulated playback from the given offset.
func (m *Engine) Play(handle domain.PreviewHandle, offset time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.previews[handle]
	if !ok {
		return domain.ErrInvalidPreviewHandle
	}
	if m.failPlay {
		return domain.NewServiceError("MockEngine", "Play", "mock play failure", nil)
	}

	p.playing = true
	p.elapsed = 0
	_ = offset // The simulated clip position does not affect elapsed time.
	return nil
}

// Stop halts simulated playback. Stopping a stopped preview is a no-op.
func (m *Engine) Stop(handle domain.PreviewHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.previews[handle]
	if !ok {
		return domain.ErrInvalidPreviewHandle
	}
	p.playing = false
	p.elapsed = 0
	return nil
}

// Playing reports whether the preview is currently playing.
func (m *Engine) Playing(handle domain.PreviewHandle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.previews[handle]
	return ok && p.playing
}

// Elapsed returns the simulated play time, clamped to domain.PreviewLimit.
func (m *Engine) Elapsed(handle domain.PreviewHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.previews[handle]
	if !ok {
		return 0, domain.ErrInvalidPreviewHandle
	}
	if p.elapsed > domain.PreviewLimit {
		return domain.PreviewLimit, nil
	}
	return p.elapsed, nil
}

// Shutdown stops all playback and releases every loaded preview.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.previews = make(map[domain.PreviewHandle]*mockPreview)
	return nil
}

// Advance moves the simulated clock forward for every playing preview.
// Previews reaching domain.PreviewLimit stop automatically, mirroring the
// real engine's auto-stop.
func (m *Engine) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.previews {
		if !p.playing {
			continue
		}
		p.elapsed += d
		if p.elapsed >= domain.PreviewLimit {
			p.elapsed = domain.PreviewLimit
			p.playing = false
		}
	}
}

// LoadedCount returns the number of currently loaded previews.
func (m *Engine) LoadedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.previews)
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
