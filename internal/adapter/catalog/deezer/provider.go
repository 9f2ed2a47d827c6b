// Package deezer implements a catalog provider over the public Deezer
// search API. Only tracks that carry a playable preview URL are returned.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

const (
	defaultBaseURL = "https://api.deezer.com"
	searchLimit    = 25
	requestTimeout = 10 * time.Second
)

// Provider searches the Deezer catalog for an artist's tracks.
//
// Thread-safety: this implementation is thread-safe.
type Provider struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewProvider creates a Deezer catalog provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With(slog.String("provider", "deezer")),
	}
}

// SetBaseURL overrides the API endpoint. Tests only.
func (p *Provider) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "deezer"
}

// searchResponse mirrors the subset of the Deezer search payload we read.
type searchResponse struct {
	Data []struct {
		Title   string `json:"title"`
		Preview string `json:"preview"`
		Artist  struct {
			Name string `json:"name"`
		} `json:"artist"`
		Album struct {
			CoverMedium string `json:"cover_medium"`
		} `json:"album"`
	} `json:"data"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries Deezer for the artist and maps the hits to tracks.
// Hits without a preview URL are dropped; the artist's roster category and
// gender are stamped onto every returned track.
func (p *Provider) Search(ctx context.Context, artist domain.Artist) ([]domain.Track, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("artist:%q", artist.Name))
	query.Set("limit", fmt.Sprintf("%d", searchLimit))

	endpoint := fmt.Sprintf("%s/search?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewCatalogError("deezer", artist.Name, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewCatalogError("deezer", artist.Name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewCatalogError("deezer", artist.Name,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewCatalogError("deezer", artist.Name, err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domain.NewCatalogError("deezer", artist.Name, err)
	}
	if parsed.Error != nil {
		return nil, domain.NewCatalogError("deezer", artist.Name,
			fmt.Errorf("api error %s: %s", parsed.Error.Type, parsed.Error.Message))
	}

	tracks := make([]domain.Track, 0, len(parsed.Data))
	for _, hit := range parsed.Data {
		if hit.Preview == "" {
			continue
		}
		tracks = append(tracks, domain.Track{
			Title:      hit.Title,
			Artist:     hit.Artist.Name,
			PreviewURL: hit.Preview,
			CoverURL:   hit.Album.CoverMedium,
			Category:   artist.Category,
			Gender:     artist.Gender,
		})
	}

	p.logger.Debug("artist searched",
		slog.String("artist", artist.Name),
		slog.Int("hits", len(parsed.Data)),
		slog.Int("playable", len(tracks)))

	return tracks, nil
}

// Verify interface implementation
var _ ports.CatalogProvider = (*Provider)(nil)
