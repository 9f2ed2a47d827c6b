// Package domain defines domain-specific errors.
// These errors represent business rule failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrRoundLocked is returned when an action arrives after the round's
	// answer has been revealed.
	ErrRoundLocked = errors.New("round is locked")

	// ErrMatchNotRunning is returned when a match action is attempted with
	// no live match.
	ErrMatchNotRunning = errors.New("no match in progress")

	// ErrMatchFinished is returned when a match action is attempted after
	// the terminal state.
	ErrMatchFinished = errors.New("match already finished")

	// ErrNoCharges is returned when a power-up is used with zero charges
	// remaining.
	ErrNoCharges = errors.New("no charges remaining")

	// ErrHintAlreadyUsed is returned on a second hint within the same round.
	ErrHintAlreadyUsed = errors.New("hint already used this round")

	// ErrListenLimit is returned when hard difficulty's preview listen cap
	// is exhausted.
	ErrListenLimit = errors.New("listen limit reached")

	// ErrNotEnoughSongs is returned when pool building finds fewer than the
	// minimum playable tracks. This is the only fatal match-setup error.
	ErrNotEnoughSongs = errors.New("not enough songs found")

	// ErrEmptyPool is returned when a round is prepared from an empty pool.
	ErrEmptyPool = errors.New("song pool is empty")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned when a requested account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAuthenticated is returned when an account operation runs with
	// no logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientCoins is returned when a purchase exceeds the balance.
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrUnknownItem is returned for a purchase of an unknown shop item.
	ErrUnknownItem = errors.New("unknown shop item")

	// ErrThemeLocked is returned when selecting a theme above the user's level.
	ErrThemeLocked = errors.New("theme locked")

	// ErrInvalidPreviewHandle is returned when an invalid preview handle is used.
	ErrInvalidPreviewHandle = errors.New("invalid preview handle")

	// ErrInvalidVolume is returned when the volume is out of range (0.0-1.0).
	ErrInvalidVolume = errors.New("invalid volume: must be between 0.0 and 1.0")

	// ErrSessionNotFound is returned when a session ID resolves to no live
	// session context.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPlaybackAborted marks a preview stopped by user action while
	// loading. Expected during rapid play/pause; never logged as an error.
	ErrPlaybackAborted = errors.New("playback aborted")
)

// CatalogError wraps a per-artist catalog lookup failure.
// Pool building recovers from these and continues with remaining artists.
type CatalogError struct {
	Provider string // Catalog provider name (e.g. "deezer")
	Artist   string // Artist the lookup was for
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s lookup for %q failed: %v", e.Provider, e.Artist, e.Err)
}

// Unwrap returns the underlying error.
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(provider, artist string, err error) *CatalogError {
	return &CatalogError{Provider: provider, Artist: artist, Err: err}
}

// RepositoryError wraps a persistence layer failure with context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g. "save", "load")
	Type    string // Repository type (e.g. "accounts", "history")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Type: repoType, Message: message, Err: err}
}

// ServiceError wraps a service layer failure with context.
type ServiceError struct {
	Service string // Service name (e.g. "MatchService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Message: message, Err: err}
}
