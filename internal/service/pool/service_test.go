package pool

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// stubProvider serves canned tracks per artist name.
type stubProvider struct {
	tracks map[string][]domain.Track
	errs   map[string]error
	calls  []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(_ context.Context, artist domain.Artist) ([]domain.Track, error) {
	p.calls = append(p.calls, artist.Name)
	if err := p.errs[artist.Name]; err != nil {
		return nil, err
	}
	return p.tracks[artist.Name], nil
}

func testRoster(size int) []domain.Artist {
	roster := make([]domain.Artist, 0, size)
	for i := 0; i < size; i++ {
		roster = append(roster, domain.Artist{
			Name:     fmt.Sprintf("Artista %d", i),
			Category: domain.GenreSertanejo,
			Gender:   domain.GenderMale,
		})
	}
	return roster
}

func tracksFor(artist string, count int) []domain.Track {
	tracks := make([]domain.Track, 0, count)
	for i := 0; i < count; i++ {
		tracks = append(tracks, domain.Track{
			Title:    fmt.Sprintf("%s Música %d", artist, i),
			Artist:   artist,
			Category: domain.GenreSertanejo,
		})
	}
	return tracks
}

func newService(t *testing.T, roster []domain.Artist, provider ports.CatalogProvider) (*Service, *eventbus.SyncEventBus) {
	t.Helper()
	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() {
		_ = bus.Close()
	})
	svc := NewService(roster, provider, bus, rand.New(rand.NewSource(1)), logger.NewTestLogger())
	return svc, bus
}

func TestBuildHappyPath(t *testing.T) {
	roster := testRoster(10)
	provider := &stubProvider{tracks: map[string][]domain.Track{}}
	for _, a := range roster {
		provider.tracks[a.Name] = tracksFor(a.Name, 2)
	}

	svc, bus := newService(t, roster, provider)

	var progress []domain.PoolProgressEvent
	bus.Subscribe(domain.EventPoolProgress, func(e domain.Event) {
		progress = append(progress, e.(domain.PoolProgressEvent))
	})

	tracks, err := svc.Build(context.Background(), domain.GenreSertanejo)
	require.NoError(t, err)
	assert.Len(t, tracks, 20)
	assert.Len(t, progress, 10)
	assert.Equal(t, 10, progress[len(progress)-1].Done)
}

func TestBuildDeduplicatesTitles(t *testing.T) {
	roster := testRoster(2)
	provider := &stubProvider{tracks: map[string][]domain.Track{
		"Artista 0": {
			{Title: "Evidências", Artist: "Artista 0", Category: domain.GenreSertanejo},
			{Title: "EVIDÊNCIAS", Artist: "Artista 0", Category: domain.GenreSertanejo},
			{Title: "Outra", Artist: "Artista 0", Category: domain.GenreSertanejo},
		},
		"Artista 1": {
			{Title: "evidências", Artist: "Artista 1", Category: domain.GenreSertanejo},
			{Title: "Mais Uma", Artist: "Artista 1", Category: domain.GenreSertanejo},
			{Title: "Quinta", Artist: "Artista 1", Category: domain.GenreSertanejo},
			{Title: "Sexta", Artist: "Artista 1", Category: domain.GenreSertanejo},
		},
	}}

	svc, _ := newService(t, roster, provider)

	tracks, err := svc.Build(context.Background(), domain.GenreSertanejo)
	require.NoError(t, err)
	assert.Len(t, tracks, 5, "title variants must collapse to one")
}

func TestBuildSwallowsPerArtistErrors(t *testing.T) {
	roster := testRoster(6)
	provider := &stubProvider{
		tracks: map[string][]domain.Track{},
		errs:   map[string]error{},
	}
	for i, a := range roster {
		if i%2 == 0 {
			provider.errs[a.Name] = errors.New("boom")
		} else {
			provider.tracks[a.Name] = tracksFor(a.Name, 2)
		}
	}

	svc, _ := newService(t, roster, provider)

	tracks, err := svc.Build(context.Background(), domain.GenreSertanejo)
	require.NoError(t, err)
	assert.Len(t, tracks, 6)
}

func TestBuildWidensThinFirstBatch(t *testing.T) {
	// 40 artists: the first pass covers 30, the widening pass the next 10
	// (roster exhausted before the full 15).
	roster := testRoster(40)
	provider := &thinProvider{}

	svc, _ := newService(t, roster, provider)

	tracks, err := svc.Build(context.Background(), domain.GenreSertanejo)
	require.NoError(t, err)
	// First pass: 6 tracks (under the widen threshold); widened pass adds
	// one per remaining artist.
	assert.Len(t, tracks, 16)
	assert.Equal(t, 40, provider.calls)
}

// thinProvider yields tracks for every fifth call in the first batch and
// for every call after it, forcing the widening pass deterministically.
type thinProvider struct {
	calls int
}

func (p *thinProvider) Name() string { return "thin" }

func (p *thinProvider) Search(_ context.Context, artist domain.Artist) ([]domain.Track, error) {
	p.calls++
	if p.calls <= 30 && p.calls%5 != 0 {
		return nil, nil
	}
	return tracksFor(artist.Name, 1), nil
}

func TestBuildNotEnoughSongs(t *testing.T) {
	roster := testRoster(3)
	provider := &stubProvider{tracks: map[string][]domain.Track{
		"Artista 0": tracksFor("Artista 0", 2),
	}}

	svc, _ := newService(t, roster, provider)

	_, err := svc.Build(context.Background(), domain.GenreSertanejo)
	assert.ErrorIs(t, err, domain.ErrNotEnoughSongs)
}

func TestBuildGenreAllUsesWholeRoster(t *testing.T) {
	roster := []domain.Artist{
		{Name: "A", Category: domain.GenreSertanejo},
		{Name: "B", Category: domain.GenrePagode},
		{Name: "C", Category: domain.GenrePopIntl},
	}
	provider := &stubProvider{tracks: map[string][]domain.Track{
		"A": tracksFor("A", 2),
		"B": tracksFor("B", 2),
		"C": tracksFor("C", 2),
	}}

	svc, _ := newService(t, roster, provider)

	tracks, err := svc.Build(context.Background(), domain.GenreAll)
	require.NoError(t, err)
	assert.Len(t, tracks, 6)
	assert.Len(t, provider.calls, 3)
}

func TestBuildCancelledContext(t *testing.T) {
	roster := testRoster(10)
	provider := &stubProvider{tracks: map[string][]domain.Track{}}

	svc, _ := newService(t, roster, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Build(ctx, domain.GenreSertanejo)
	assert.ErrorIs(t, err, domain.ErrNotEnoughSongs)
	assert.Empty(t, provider.calls)
}
