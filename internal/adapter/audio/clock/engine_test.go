package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
	"github.com/tejashwikalptaru/superquiz/internal/testutil"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	engine := NewEngine()
	engine.SetLogger(logger.NewTestLogger())
	clk := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	engine.SetClock(clk.Now)
	return engine, clk
}

func TestEngineLoadPlayStop(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, clk := newTestEngine(t)

	handle, err := engine.Load("https://cdn.example.com/preview.mp3")
	require.NoError(t, err)
	require.NotEqual(t, domain.InvalidPreviewHandle, handle)

	assert.False(t, engine.Playing(handle))

	require.NoError(t, engine.Play(handle, 10*time.Second))
	assert.True(t, engine.Playing(handle))

	clk.Advance(5 * time.Second)
	elapsed, err := engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, elapsed)

	require.NoError(t, engine.Stop(handle))
	assert.False(t, engine.Playing(handle))

	elapsed, err = engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)
}

func TestEngineInvalidHandle(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, _ := newTestEngine(t)

	err := engine.Play(domain.PreviewHandle(42), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)

	err = engine.Stop(domain.PreviewHandle(42))
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)

	_, err = engine.Elapsed(domain.PreviewHandle(42))
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)

	err = engine.Unload(domain.PreviewHandle(42))
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)

	assert.False(t, engine.Playing(domain.InvalidPreviewHandle))
}

func TestEnginePreviewLimitClamp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, clk := newTestEngine(t)

	handle, err := engine.Load("https://cdn.example.com/preview.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play(handle, 0))

	clk.Advance(domain.PreviewLimit + 10*time.Second)

	// Past the window the preview reads as stopped and elapsed is clamped.
	assert.False(t, engine.Playing(handle))

	elapsed, err := engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, domain.PreviewLimit, elapsed)
}

func TestEngineReplayRestartsWindow(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, clk := newTestEngine(t)

	handle, err := engine.Load("https://cdn.example.com/preview.mp3")
	require.NoError(t, err)

	require.NoError(t, engine.Play(handle, 0))
	clk.Advance(20 * time.Second)

	// Playing again resets the wall-clock window.
	require.NoError(t, engine.Play(handle, 10*time.Second))
	elapsed, err := engine.Elapsed(handle)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), elapsed)
	assert.True(t, engine.Playing(handle))
}

func TestEngineUnloadStopsPlayback(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, _ := newTestEngine(t)

	handle, err := engine.Load("https://cdn.example.com/preview.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play(handle, 0))

	require.NoError(t, engine.Unload(handle))
	assert.False(t, engine.Playing(handle))

	_, err = engine.Elapsed(handle)
	assert.ErrorIs(t, err, domain.ErrInvalidPreviewHandle)
}

func TestEngineShutdown(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	engine, _ := newTestEngine(t)

	h1, err := engine.Load("https://cdn.example.com/a.mp3")
	require.NoError(t, err)
	h2, err := engine.Load("https://cdn.example.com/b.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play(h1, 0))

	require.NoError(t, engine.Shutdown())

	assert.False(t, engine.Playing(h1))
	assert.ErrorIs(t, engine.Stop(h2), domain.ErrInvalidPreviewHandle)
}
