// Package session owns the per-browser session context: the logged-in
// user, the active theme, the preview volume and the recent match
// history. It replaces what would otherwise be ambient globals with an
// explicit object the presentation layer passes by ID.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// DefaultVolume is the preview volume of a fresh session.
const DefaultVolume = 0.7

// DefaultThemeID is the theme of a fresh or logged-out session.
const DefaultThemeID = "padrao"

// Context is the mutable state of one session. Values are copied out of
// the service; callers never share the internal instance.
type Context struct {
	// ID is the opaque session identifier handed to the browser.
	ID string

	// UserID is the bound account, empty for guests.
	UserID string

	// ThemeID is the active UI theme.
	ThemeID string

	// Volume is the preview playback volume in [0.0, 1.0].
	Volume float64

	// LastSeen is the time of the last operation on this session.
	LastSeen time.Time
}

// Guest reports whether the session has no bound account.
func (c Context) Guest() bool {
	return c.UserID == ""
}

// Service manages session contexts.
//
// Thread-safety: this implementation is thread-safe.
type Service struct {
	history ports.HistoryRepository
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Context

	// now is the clock source, swappable in tests.
	now func() time.Time
}

// NewService creates a session service.
func NewService(history ports.HistoryRepository, logger *slog.Logger) *Service {
	return &Service{
		history:  history,
		logger:   logger.With(slog.String("service", "session")),
		sessions: make(map[string]*Context),
		now:      time.Now,
	}
}

// SetClock overrides the clock source. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Create opens a fresh guest session and returns its context.
func (s *Service) Create() Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := &Context{
		ID:       uuid.NewString(),
		ThemeID:  DefaultThemeID,
		Volume:   DefaultVolume,
		LastSeen: s.now(),
	}
	s.sessions[ctx.ID] = ctx

	s.logger.Debug("session created", slog.String("session_id", ctx.ID))
	return *ctx
}

// Get returns a copy of the session context and refreshes its idle timer.
func (s *Service) Get(id string) (Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[id]
	if !ok {
		return Context{}, domain.ErrSessionNotFound
	}
	ctx.LastSeen = s.now()
	return *ctx, nil
}

// BindUser attaches an account to the session after login or register.
// The account's persisted theme becomes the session theme.
func (s *Service) BindUser(id string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	ctx.UserID = user.ID
	ctx.ThemeID = user.CurrentThemeID
	if ctx.ThemeID == "" {
		ctx.ThemeID = DefaultThemeID
	}
	ctx.LastSeen = s.now()

	s.logger.Info("session bound",
		slog.String("session_id", id),
		slog.String("username", user.Username))
	return nil
}

// ClearUser detaches the account from the session. The theme falls back
// to the default; volume is a device preference and survives logout.
func (s *Service) ClearUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	ctx.UserID = ""
	ctx.ThemeID = DefaultThemeID
	ctx.LastSeen = s.now()
	return nil
}

// SetVolume updates the session's preview volume.
func (s *Service) SetVolume(id string, volume float64) error {
	if volume < 0 || volume > 1 {
		return domain.ErrInvalidVolume
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	ctx.Volume = volume
	ctx.LastSeen = s.now()
	return nil
}

// SetTheme updates the session's active theme. Level gating happens in
// the progression service before this is called; the session just holds
// the choice.
func (s *Service) SetTheme(id, themeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	ctx.ThemeID = themeID
	ctx.LastSeen = s.now()
	return nil
}

// Destroy removes the session. Destroying an unknown session is a no-op.
func (s *Service) Destroy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// RecentHistory returns the shared recent match history, most recent
// first. The history is device-scoped, not per-account, matching the
// single-device play model.
func (s *Service) RecentHistory() ([]domain.HistoryRecord, error) {
	return s.history.Recent()
}

// PruneIdle drops sessions idle for longer than maxIdle and reports how
// many were removed.
func (s *Service) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	pruned := 0
	for id, ctx := range s.sessions {
		if ctx.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}

	if pruned > 0 {
		s.logger.Debug("idle sessions pruned", slog.Int("count", pruned))
	}
	return pruned
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
