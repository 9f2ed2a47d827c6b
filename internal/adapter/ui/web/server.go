// Package web is the browser-facing adapter: a JSON API over the game
// services plus a server-sent-events stream that forwards domain events.
// No game rules live here; every decision is delegated to the services.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
	"github.com/tejashwikalptaru/superquiz/internal/service/match"
	"github.com/tejashwikalptaru/superquiz/internal/service/session"
)

// MatchService is the slice of the match engine the web layer drives.
type MatchService interface {
	Start(ctx context.Context, setup match.Setup) error
	Answer(option string) error
	Skip() error
	Hint() error
	Pass() error
	PlayPreview() error
	StopPreview() error
	Reset()
	Snapshot() match.Snapshot
}

// ProgressionService is the slice of account progression the web layer uses.
type ProgressionService interface {
	Register(username, password, avatar string) (*domain.User, error)
	Login(username, password string) (*domain.User, error)
	User(id string) (*domain.User, error)
	Leaderboard() ([]*domain.User, error)
	UpdateTheme(userID, themeID string) (*domain.User, error)
	PurchaseItem(userID, itemID string) (*domain.User, error)
}

// SessionService is the slice of session management the web layer uses.
type SessionService interface {
	Create() session.Context
	Get(id string) (session.Context, error)
	BindUser(id string, user *domain.User) error
	ClearUser(id string) error
	SetVolume(id string, volume float64) error
	SetTheme(id, themeID string) error
	Destroy(id string)
	RecentHistory() ([]domain.HistoryRecord, error)
}

// Server hosts the JSON API and the SSE stream.
type Server struct {
	matches     MatchService
	progression ProgressionService
	sessions    SessionService
	events      ports.EventBus
	logger      *slog.Logger

	httpServer *http.Server
}

// NewServer creates the web server listening on addr.
func NewServer(
	addr string,
	matches MatchService,
	progression ProgressionService,
	sessions SessionService,
	events ports.EventBus,
	logger *slog.Logger,
) *Server {
	s := &Server{
		matches:     matches,
		progression: progression,
		sessions:    sessions,
		events:      events,
		logger:      logger.With(slog.String("adapter", "web")),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// routes builds the HTTP mux. All endpoints are JSON except the SSE stream.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)

	mux.HandleFunc("POST /api/match", s.handleMatchStart)
	mux.HandleFunc("DELETE /api/match", s.handleMatchReset)
	mux.HandleFunc("GET /api/match", s.handleMatchState)
	mux.HandleFunc("POST /api/match/answer", s.handleAnswer)
	mux.HandleFunc("POST /api/match/skip", s.handleSkip)
	mux.HandleFunc("POST /api/match/hint", s.handleHint)
	mux.HandleFunc("POST /api/match/pass", s.handlePass)
	mux.HandleFunc("POST /api/match/preview/play", s.handlePreviewPlay)
	mux.HandleFunc("POST /api/match/preview/stop", s.handlePreviewStop)

	mux.HandleFunc("GET /api/shop", s.handleShopList)
	mux.HandleFunc("POST /api/shop/purchase", s.handlePurchase)
	mux.HandleFunc("GET /api/themes", s.handleThemes)
	mux.HandleFunc("POST /api/themes/select", s.handleThemeSelect)
	mux.HandleFunc("GET /api/badges", s.handleBadges)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/volume", s.handleVolume)

	mux.HandleFunc("GET /api/events", s.handleEvents)

	return s.logRequests(mux)
}

// logRequests is the access-log middleware.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("took", time.Since(start)))
	})
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("web server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartListener serves on an existing listener. Test hook.
func (s *Server) StartListener(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the SSE streams.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("web server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler. Test hook for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
