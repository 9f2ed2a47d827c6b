package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
)

// Catalog provider names accepted in configuration.
const (
	CatalogDeezer  = "deezer"
	CatalogYTMusic = "ytmusic"
	CatalogLocal   = "local"
)

// Config holds application configuration.
type Config struct {
	// Addr is the web server listen address
	Addr string

	// DatabasePath is the sqlite file path; empty selects the in-memory
	// repositories (state lost on restart)
	DatabasePath string

	// Catalog selects the song catalog provider
	Catalog string

	// MusicDirs are the directories scanned by the local catalog
	MusicDirs []string

	// DeezerBaseURL overrides the Deezer API endpoint; empty uses the
	// public API
	DeezerBaseURL string

	// ResultLogURL is the remote match log endpoint; empty disables it
	ResultLogURL string

	// UseMockAudio swaps the wall-clock audio engine for the mock (tests)
	UseMockAudio bool

	// LogLevel and LogFormat control logging output
	LogLevel  slog.Level
	LogFormat string
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		Addr:      ":8080",
		Catalog:   CatalogDeezer,
		LogLevel:  loggerCfg.Level,
		LogFormat: loggerCfg.Format,
	}
}

// LoadConfig builds the configuration from the environment, reading a .env
// file first when present. Unset variables keep their defaults.
func LoadConfig() Config {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("SUPERQUIZ_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SUPERQUIZ_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SUPERQUIZ_CATALOG"); v != "" {
		cfg.Catalog = strings.ToLower(v)
	}
	if v := os.Getenv("SUPERQUIZ_MUSIC_DIRS"); v != "" {
		for _, dir := range strings.Split(v, string(filepath.ListSeparator)) {
			if dir = strings.TrimSpace(dir); dir != "" {
				cfg.MusicDirs = append(cfg.MusicDirs, dir)
			}
		}
	}
	if v := os.Getenv("SUPERQUIZ_DEEZER_URL"); v != "" {
		cfg.DeezerBaseURL = v
	}
	if v := os.Getenv("SUPERQUIZ_RESULT_LOG_URL"); v != "" {
		cfg.ResultLogURL = v
	}
	if v := os.Getenv("SUPERQUIZ_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	return cfg
}
