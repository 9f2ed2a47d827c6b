// Package pool assembles the song pool a match plays from: a shuffled slice
// of the roster is queried against the catalog, results are deduplicated by
// title, and a widening retry pass kicks in when the first batch comes back
// thin.
package pool

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/gosimple/slug"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

const (
	// artistBatch is how many artists the first pass queries.
	artistBatch = 30

	// widenBatch is how many additional artists the retry pass queries.
	widenBatch = 15

	// widenThreshold triggers the retry pass when the first batch yields
	// fewer tracks than this.
	widenThreshold = 10

	// minPoolSize is the hard floor below which setup aborts.
	minPoolSize = 5
)

// Service builds song pools.
//
// Thread-safety: NOT thread-safe (unsynchronized rand.Rand); the match
// engine builds one pool at a time.
type Service struct {
	roster   []domain.Artist
	provider ports.CatalogProvider
	events   ports.EventBus
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewService creates a pool service over the given roster and catalog.
func NewService(
	roster []domain.Artist,
	provider ports.CatalogProvider,
	events ports.EventBus,
	rng *rand.Rand,
	logger *slog.Logger,
) *Service {
	return &Service{
		roster:   roster,
		provider: provider,
		events:   events,
		rng:      rng,
		logger:   logger.With(slog.String("service", "pool")),
	}
}

// Build assembles a shuffled song pool for the genre. Per-artist catalog
// failures are skipped; the only fatal outcome is a pool smaller than the
// minimum, reported as domain.ErrNotEnoughSongs.
func (s *Service) Build(ctx context.Context, genre domain.Genre) ([]domain.Track, error) {
	candidates := s.filterByGenre(genre)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	limit := min(len(candidates), artistBatch)
	selected := candidates[:limit]

	seen := make(map[string]bool)
	tracks := s.fetch(ctx, selected, seen, nil, len(selected))

	// Thin first batch: widen over the next slice of the shuffled roster.
	if len(tracks) < widenThreshold && len(candidates) > limit {
		widenLimit := min(len(candidates), limit+widenBatch)
		remaining := candidates[limit:widenLimit]
		s.logger.Info("widening artist pool",
			slog.Int("have", len(tracks)),
			slog.Int("extra_artists", len(remaining)))
		tracks = s.fetch(ctx, remaining, seen, tracks, len(remaining))
	}

	if len(tracks) < minPoolSize {
		return nil, domain.ErrNotEnoughSongs
	}

	s.rng.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})

	s.logger.Info("pool built",
		slog.String("genre", string(genre)),
		slog.Int("tracks", len(tracks)))

	return tracks, nil
}

// fetch queries the catalog for each artist, appending unseen tracks to
// acc. Progress events are published per artist for the loading screen.
func (s *Service) fetch(
	ctx context.Context,
	artists []domain.Artist,
	seen map[string]bool,
	acc []domain.Track,
	total int,
) []domain.Track {
	for i, artist := range artists {
		if ctx.Err() != nil {
			return acc
		}

		results, err := s.provider.Search(ctx, artist)
		if err != nil {
			// Soft failure: one missing artist never sinks the match.
			s.logger.Debug("artist search failed",
				slog.String("artist", artist.Name),
				slog.String("error", err.Error()))
		}

		for _, track := range results {
			key := slug.Make(track.Title)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			acc = append(acc, track)
		}

		s.events.Publish(domain.NewPoolProgressEvent(artist.Name, len(acc), i+1, total))
	}
	return acc
}

// filterByGenre returns the roster entries for the genre as a fresh slice.
func (s *Service) filterByGenre(genre domain.Genre) []domain.Artist {
	if genre == domain.GenreAll {
		out := make([]domain.Artist, len(s.roster))
		copy(out, s.roster)
		return out
	}
	var out []domain.Artist
	for _, a := range s.roster {
		if a.Category == genre {
			out = append(out, a)
		}
	}
	return out
}
