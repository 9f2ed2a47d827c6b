package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

func TestEngine_LoadPlayStop(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("https://cdn.example.com/preview.mp3")
	require.NoError(t, err)
	require.NotEqual(t, domain.InvalidPreviewHandle, handle)

	require.NoError(t, engine.Play(handle, 5*time.Second))
	assert.True(t, engine.Playing(handle))

	require.NoError(t, engine.Stop(handle))
	assert.False(t, engine.Playing(handle))

	// Stopping again is a no-op
	require.NoError(t, engine.Stop(handle))
}

func TestEngine_InvalidHandle(t *testing.T) {
	engine := NewEngine()

	assert.ErrorIs(t, engine.Play(42, 0), domain.ErrInvalidPreviewHandle)
	assert.ErrorIs(t, engine.Stop(42), domain.ErrInvalidPreviewHandle)
	assert.ErrorIs(t, engine.Unload(42), domain.ErrInvalidPreviewHandle)
	_, err := engine.Elapsed(42)
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)
	assert.False(t, engine.Playing(42))
}

func TestEngine_AdvanceAutoStopsAtLimit(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("url")
	require.NoError(t, err)
	require.NoError(t, engine.Play(handle, 0))

	engine.Advance(10 * time.Second)
	elapsed, err := engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, elapsed)
	assert.True(t, engine.Playing(handle))

	engine.Advance(domain.PreviewLimit)
	elapsed, err = engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, domain.PreviewLimit, elapsed)
	assert.False(t, engine.Playing(handle), "preview must auto-stop at the limit")
}

func TestEngine_FailureInjection(t *testing.T) {
	engine := NewEngine()

	engine.SetFailLoad(true)
	_, err := engine.Load("url")
	assert.Error(t, err)

	engine.SetFailLoad(false)
	handle, err := engine.Load("url")
	require.NoError(t, err)

	engine.SetFailPlay(true)
	assert.Error(t, engine.Play(handle, 0))
}

func TestEngine_Shutdown(t *testing.T) {
	engine := NewEngine()

	h1, _ := engine.Load("one")
	_, _ = engine.Load("two")
	require.NoError(t, engine.Play(h1, 0))
	assert.Equal(t, 2, engine.LoadedCount())

	require.NoError(t, engine.Shutdown())
	assert.Zero(t, engine.LoadedCount())
	assert.False(t, engine.Playing(h1))
}
