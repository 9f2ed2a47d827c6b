// Package local implements a catalog provider over a folder of audio
// files. It exists for offline play: tracks are matched to an artist by
// their embedded tags instead of a remote search.
package local

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// supportedExtensions lists the audio formats the tag reader understands.
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

// Provider scans configured directories for tagged audio files.
//
// Thread-safety: this implementation is thread-safe; the directory list is
// fixed at construction.
type Provider struct {
	dirs   []string
	logger *slog.Logger
}

// NewProvider creates a local-folder catalog provider over the given
// directories.
func NewProvider(dirs []string, logger *slog.Logger) *Provider {
	return &Provider{
		dirs:   dirs,
		logger: logger.With(slog.String("provider", "local")),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "local"
}

// Search walks the configured directories and returns the files whose
// artist tag matches the requested artist (case-insensitive). Files that
// cannot be opened or tagged are skipped. The preview URL is a file:// URI;
// the artist's roster category and gender are stamped onto every track.
func (p *Provider) Search(ctx context.Context, artist domain.Artist) ([]domain.Track, error) {
	wanted := strings.ToLower(strings.TrimSpace(artist.Name))

	var tracks []domain.Track
	for _, dir := range p.dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtree, keep going.
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			track, ok := p.readTrack(path, artist)
			if !ok {
				return nil
			}
			if strings.ToLower(strings.TrimSpace(track.Artist)) != wanted {
				return nil
			}

			tracks = append(tracks, track)
			return nil
		})
		if err != nil {
			return nil, domain.NewCatalogError("local", artist.Name, err)
		}
	}

	p.logger.Debug("artist searched",
		slog.String("artist", artist.Name),
		slog.Int("matches", len(tracks)))

	return tracks, nil
}

// readTrack extracts tag metadata from one file. Files without a readable
// title tag fall back to the file name.
func (p *Provider) readTrack(path string, artist domain.Artist) (domain.Track, bool) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Track{}, false
	}
	defer func() {
		_ = file.Close()
	}()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		return domain.Track{}, false
	}

	title := strings.TrimSpace(metadata.Title())
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return domain.Track{
		Title:      title,
		Artist:     strings.TrimSpace(metadata.Artist()),
		PreviewURL: "file://" + path,
		Category:   artist.Category,
		Gender:     artist.Gender,
	}, true
}

// Verify interface implementation
var _ ports.CatalogProvider = (*Provider)(nil)
