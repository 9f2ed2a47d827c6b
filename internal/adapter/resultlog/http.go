// Package resultlog ships finished-match records to a remote collector.
// Delivery is strictly best-effort: the game never waits on it and never
// surfaces its failures.
package resultlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

const postTimeout = 5 * time.Second

// HTTPLogger implements ports.MatchLogger via a JSON POST to a configured
// endpoint. An empty endpoint disables logging entirely.
//
// Thread-safety: this implementation is thread-safe.
type HTTPLogger struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPLogger creates a match logger posting to endpoint. Pass an empty
// endpoint to disable remote logging.
func NewHTTPLogger(endpoint string, logger *slog.Logger) *HTTPLogger {
	return &HTTPLogger{
		endpoint: endpoint,
		client:   &http.Client{Timeout: postTimeout},
		logger:   logger.With(slog.String("adapter", "resultlog")),
	}
}

// payload is the wire format of one logged match.
type payload struct {
	WinnerName   string `json:"winnerName"`
	WinnerAvatar string `json:"winnerAvatar"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Score1       int    `json:"score1"`
	Score2       int    `json:"score2"`
	Date         string `json:"date"`
}

// LogMatch posts the record in a background goroutine. Failures are logged
// at debug level and dropped.
func (l *HTTPLogger) LogMatch(record domain.HistoryRecord, player1, player2 string) {
	if l.endpoint == "" {
		return
	}

	body, err := json.Marshal(payload{
		WinnerName:   record.WinnerName,
		WinnerAvatar: record.WinnerAvatar,
		Player1:      player1,
		Player2:      player2,
		Score1:       record.Score1,
		Score2:       record.Score2,
		Date:         record.Date,
	})
	if err != nil {
		l.logger.Debug("failed to encode match record", slog.String("error", err.Error()))
		return
	}

	go l.post(body)
}

func (l *HTTPLogger) post(body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		l.logger.Debug("failed to build match log request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Debug("match log post failed", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		l.logger.Debug("match log rejected", slog.Int("status", resp.StatusCode))
	}
}

// Verify interface implementation
var _ ports.MatchLogger = (*HTTPLogger)(nil)
