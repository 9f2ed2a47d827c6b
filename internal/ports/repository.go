// Package ports defines repository interfaces for data persistence abstraction.
package ports

import (
	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// AccountRepository handles the persistence of user accounts.
// Implementations can use SQLite or in-memory storage.
//
// All methods return defensive copies; mutating a returned *domain.User has
// no effect until Update is called with it.
//
// Thread-safety: implementations must be thread-safe.
type AccountRepository interface {
	// Create persists a new user. The user's ID must be set by the caller.
	//
	// Returns domain.ErrUsernameTaken if the username already exists.
	Create(user *domain.User) error

	// FindByID retrieves a user by ID.
	//
	// Returns domain.ErrUserNotFound if no such user exists.
	FindByID(id string) (*domain.User, error)

	// FindByUsername retrieves a user by username (case-insensitive).
	//
	// Returns domain.ErrUserNotFound if no such user exists.
	FindByUsername(username string) (*domain.User, error)

	// Update replaces the stored record for the user's ID.
	//
	// Returns domain.ErrUserNotFound if the user was never created.
	Update(user *domain.User) error

	// All returns every stored user. Used by the leaderboard.
	All() ([]*domain.User, error)
}

// HistoryRepository handles the persisted session history of recent match
// results (max 5 records, most-recent-first).
//
// Thread-safety: implementations must be thread-safe.
type HistoryRepository interface {
	// Append stores a record at the head of the history, trimming the
	// history to its maximum length.
	Append(record domain.HistoryRecord) error

	// Recent returns the stored records, most recent first. An empty
	// history returns an empty slice, not an error.
	Recent() ([]domain.HistoryRecord, error)

	// Clear removes all history records.
	Clear() error
}

// HistoryLimit is the maximum number of session-history records kept.
const HistoryLimit = 5
