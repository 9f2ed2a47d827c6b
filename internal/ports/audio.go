// Package ports defines interfaces for dependency inversion.
// These interfaces keep the game logic independent of external frameworks.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// AudioEngine is the interface for preview playback engines.
//
// Exactly one preview handle is live per session; only the match engine
// commands it. Implementations must guarantee stop-on-dispose: Shutdown
// stops and unloads everything.
//
// Implementations must be thread-safe.
type AudioEngine interface {
	// Load prepares the preview at the given URL for playback and returns
	// a handle to it. Any previously loaded preview remains loaded until
	// Unload is called with its handle.
	Load(previewURL string) (domain.PreviewHandle, error)

	// Unload releases resources for a previously loaded preview.
	//
	// Returns an error if the handle is invalid.
	Unload(handle domain.PreviewHandle) error

	// Play starts playback from the given offset into the preview.
	// Playback stops automatically once domain.PreviewLimit elapses.
	//
	// Returns an error if the handle is invalid or playback cannot start.
	Play(handle domain.PreviewHandle, offset time.Duration) error

	// Stop halts playback of the given preview. Stopping an already
	// stopped preview is a no-op.
	//
	// Returns an error if the handle is invalid.
	Stop(handle domain.PreviewHandle) error

	// Playing reports whether the given preview is currently playing.
	Playing(handle domain.PreviewHandle) bool

	// Elapsed returns the play time elapsed since Play, clamped to
	// domain.PreviewLimit.
	//
	// Returns an error if the handle is invalid.
	Elapsed(handle domain.PreviewHandle) (time.Duration, error)

	// Shutdown stops all playback and releases every loaded preview.
	Shutdown() error
}

// AudioEngineFactory is a function that creates an AudioEngine instance.
// This allows for dependency injection of different engine implementations.
type AudioEngineFactory func() (AudioEngine, error)
