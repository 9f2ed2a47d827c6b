// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/adapter/audio/clock"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/catalog/deezer"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/catalog/local"
	ytmusiccat "github.com/tejashwikalptaru/superquiz/internal/adapter/catalog/ytmusic"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/repository/sqlite"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/resultlog"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/ui/web"
	"github.com/tejashwikalptaru/superquiz/internal/catalogdata"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
	"github.com/tejashwikalptaru/superquiz/internal/service/bot"
	"github.com/tejashwikalptaru/superquiz/internal/service/match"
	"github.com/tejashwikalptaru/superquiz/internal/service/pool"
	"github.com/tejashwikalptaru/superquiz/internal/service/progression"
	"github.com/tejashwikalptaru/superquiz/internal/service/question"
	"github.com/tejashwikalptaru/superquiz/internal/service/session"
)

// sessionMaxIdle is how long a session may sit untouched before the
// sweeper drops it.
const sessionMaxIdle = 24 * time.Hour

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
type Application struct {
	logger *slog.Logger
	config Config

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	store       *sqlite.Store

	// Repositories
	accountRepo ports.AccountRepository
	historyRepo ports.HistoryRepository

	// Services
	matchService       *match.Service
	progressionService *progression.Service
	sessionService     *session.Service

	// Presentation
	webServer *web.Server

	stopSweeper chan struct{}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{
		config:      config,
		stopSweeper: make(chan struct{}),
	}

	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("addr", config.Addr),
		slog.String("catalog", config.Catalog))

	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	if config.UseMockAudio {
		engine := mock.NewEngine()
		engine.SetLogger(app.logger.With(slog.String("engine", "mock")))
		app.audioEngine = engine
	} else {
		app.audioEngine = clock.NewEngine()
	}

	if config.DatabasePath != "" {
		store, err := sqlite.Open(config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.store = store
		app.accountRepo = sqlite.NewAccountRepository(store)
		app.historyRepo = sqlite.NewHistoryRepository(store)
	} else {
		app.accountRepo = memory.NewAccountRepository()
		app.historyRepo = memory.NewHistoryRepository()
	}

	catalog, err := app.buildCatalog()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	roster := catalogdata.Roster()

	app.progressionService = progression.NewService(
		app.accountRepo,
		app.eventBus,
		app.logger,
	)

	app.sessionService = session.NewService(app.historyRepo, app.logger)

	app.matchService = match.NewService(
		match.DefaultConfig(),
		question.NewBuilder(roster, rng, app.logger),
		pool.NewService(roster, catalog, app.eventBus, rng, app.logger),
		bot.NewPolicy(rng, app.logger),
		app.audioEngine,
		app.eventBus,
		app.historyRepo,
		resultlog.NewHTTPLogger(config.ResultLogURL, app.logger),
		app.progressionService,
		rng,
		app.logger,
	)

	app.webServer = web.NewServer(
		config.Addr,
		app.matchService,
		app.progressionService,
		app.sessionService,
		app.eventBus,
		app.logger,
	)

	return app, nil
}

// buildCatalog selects the catalog provider from configuration.
func (a *Application) buildCatalog() (ports.CatalogProvider, error) {
	switch a.config.Catalog {
	case CatalogDeezer:
		provider := deezer.NewProvider(a.logger)
		if a.config.DeezerBaseURL != "" {
			provider.SetBaseURL(a.config.DeezerBaseURL)
		}
		return provider, nil
	case CatalogYTMusic:
		return ytmusiccat.NewProvider(a.logger), nil
	case CatalogLocal:
		if len(a.config.MusicDirs) == 0 {
			return nil, fmt.Errorf("local catalog selected but no music directories configured")
		}
		return local.NewProvider(a.config.MusicDirs, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown catalog provider %q", a.config.Catalog)
	}
}

// Run starts the daily challenge rotation, the session sweeper and the web
// server. Blocks until the listener fails or Shutdown runs.
func (a *Application) Run() error {
	if err := a.progressionService.StartChallengeRotation(); err != nil {
		return fmt.Errorf("failed to start challenge rotation: %w", err)
	}
	go a.sweepSessions()

	a.logger.Info("Super Quiz Musical started")
	return a.webServer.Start()
}

// sweepSessions drops idle sessions once an hour.
func (a *Application) sweepSessions() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopSweeper:
			return
		case <-ticker.C:
			a.sessionService.PruneIdle(sessionMaxIdle)
		}
	}
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() error {
	a.logger.Info("shutting down application")
	close(a.stopSweeper)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	record := func(err error, what string) {
		if err != nil {
			a.logger.Warn("shutdown step failed",
				slog.String("step", what),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	record(a.webServer.Shutdown(ctx), "web server")
	a.matchService.Reset()
	record(a.progressionService.Shutdown(), "challenge rotation")
	record(a.audioEngine.Shutdown(), "audio engine")
	record(a.eventBus.Close(), "event bus")
	if a.store != nil {
		record(a.store.Close(), "database")
	}

	return firstErr
}
