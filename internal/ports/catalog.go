// Package ports defines the catalog lookup interface.
package ports

import (
	"context"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// CatalogProvider looks up playable tracks for an artist in a third-party
// song catalog.
//
// Search failures are soft: pool building catches the error, logs it, and
// continues with the remaining artists. Providers should therefore return
// errors rather than retry internally.
type CatalogProvider interface {
	// Name identifies the provider in logs and errors (e.g. "deezer").
	Name() string

	// Search returns the candidate tracks for the given roster artist.
	// Tracks without a playable preview URL are filtered out by the
	// provider. The returned slice may be empty without error.
	Search(ctx context.Context, artist domain.Artist) ([]domain.Track, error)
}
