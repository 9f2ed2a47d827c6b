// Package ytmusic implements a catalog provider over YouTube Music search.
// It is the fallback source when Deezer has no previews for an artist.
package ytmusic

import (
	"context"
	"log/slog"

	"github.com/raitonoberu/ytmusic"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

const watchBaseURL = "https://music.youtube.com/watch?v="

// Provider searches YouTube Music for an artist's tracks.
//
// Thread-safety: this implementation is thread-safe.
type Provider struct {
	logger *slog.Logger
}

// NewProvider creates a YouTube Music catalog provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger.With(slog.String("provider", "ytmusic")),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "ytmusic"
}

// Search runs a track search for the artist and maps the results,
// deduplicating by video ID. Hits without a video ID are dropped and the
// artist's roster category and gender are stamped onto every track.
func (p *Provider) Search(ctx context.Context, artist domain.Artist) ([]domain.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewCatalogError("ytmusic", artist.Name, err)
	}

	search := ytmusic.TrackSearch(artist.Name)
	result, err := search.Next()
	if err != nil {
		return nil, domain.NewCatalogError("ytmusic", artist.Name, err)
	}

	seen := make(map[string]bool, len(result.Tracks))
	tracks := make([]domain.Track, 0, len(result.Tracks))
	for _, hit := range result.Tracks {
		if hit.VideoID == "" || seen[hit.VideoID] {
			continue
		}
		seen[hit.VideoID] = true

		artistName := artist.Name
		if len(hit.Artists) > 0 {
			artistName = hit.Artists[0].Name
		}

		cover := ""
		if len(hit.Thumbnails) > 0 {
			cover = hit.Thumbnails[len(hit.Thumbnails)-1].URL
		}

		tracks = append(tracks, domain.Track{
			Title:      hit.Title,
			Artist:     artistName,
			PreviewURL: watchBaseURL + hit.VideoID,
			CoverURL:   cover,
			Category:   artist.Category,
			Gender:     artist.Gender,
		})
	}

	p.logger.Debug("artist searched",
		slog.String("artist", artist.Name),
		slog.Int("hits", len(result.Tracks)),
		slog.Int("unique", len(tracks)))

	return tracks, nil
}

// Verify interface implementation
var _ ports.CatalogProvider = (*Provider)(nil)
