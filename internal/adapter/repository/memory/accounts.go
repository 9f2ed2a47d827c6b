// Package memory provides in-memory repository implementations. They back
// guest sessions and tests; durable storage lives in the sqlite package.
package memory

import (
	"strings"
	"sync"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// AccountRepository implements ports.AccountRepository in process memory.
//
// Thread-safe: all operations protected by sync.RWMutex.
type AccountRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.User
	order []string
}

// NewAccountRepository creates an empty in-memory account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID: make(map[string]*domain.User),
	}
}

// Create persists a new user.
func (r *AccountRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Username, user.Username) {
			return domain.ErrUsernameTaken
		}
	}

	r.byID[user.ID] = copyUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

// FindByID retrieves a user by ID.
func (r *AccountRepository) FindByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

// FindByUsername retrieves a user by username, case-insensitively.
func (r *AccountRepository) FindByUsername(username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if strings.EqualFold(user.Username, username) {
			return copyUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Update replaces the stored record for the user's ID.
func (r *AccountRepository) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = copyUser(user)
	return nil
}

// All returns every stored user in creation order.
func (r *AccountRepository) All() ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, copyUser(r.byID[id]))
	}
	return users, nil
}

// copyUser deep-copies a user so callers cannot mutate stored state.
func copyUser(user *domain.User) *domain.User {
	clone := *user
	clone.Badges = append([]string(nil), user.Badges...)
	if user.Stats.GenreCounts != nil {
		clone.Stats.GenreCounts = make(map[domain.Genre]int, len(user.Stats.GenreCounts))
		for genre, count := range user.Stats.GenreCounts {
			clone.Stats.GenreCounts[genre] = count
		}
	}
	return &clone
}

// Verify interface implementation
var _ ports.AccountRepository = (*AccountRepository)(nil)
