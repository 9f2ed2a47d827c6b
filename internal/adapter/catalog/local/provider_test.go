package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
)

func testArtist() domain.Artist {
	return domain.Artist{Name: "Djavan", Category: domain.GenreRockMPB, Gender: domain.GenderMale}
}

func TestSearchEmptyDirectory(t *testing.T) {
	provider := NewProvider([]string{t.TempDir()}, logger.NewTestLogger())

	tracks, err := provider.Search(context.Background(), testArtist())
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestSearchMissingDirectoryIsSoft(t *testing.T) {
	provider := NewProvider([]string{filepath.Join(t.TempDir(), "nope")}, logger.NewTestLogger())

	tracks, err := provider.Search(context.Background(), testArtist())
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestSearchSkipsUntaggedFiles(t *testing.T) {
	dir := t.TempDir()
	// Audio extension but no readable tags.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noise.mp3"), []byte("not really audio"), 0o644))
	// Non-audio files are ignored outright.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte{0xFF, 0xD8}, 0o644))

	provider := NewProvider([]string{dir}, logger.NewTestLogger())

	tracks, err := provider.Search(context.Background(), testArtist())
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestSearchCancelledContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("x"), 0o644))

	provider := NewProvider([]string{dir}, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Search(ctx, testArtist())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProviderName(t *testing.T) {
	provider := NewProvider(nil, logger.NewTestLogger())
	assert.Equal(t, "local", provider.Name())
}
