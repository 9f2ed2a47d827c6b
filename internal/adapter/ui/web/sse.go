package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

const (
	// sseBufferSize is the per-client event buffer. A client that falls
	// this far behind starts losing events; the state endpoint recovers.
	sseBufferSize = 64

	// sseHeartbeat keeps idle connections alive through proxies.
	sseHeartbeat = 25 * time.Second
)

// envelope is the wire shape of one SSE event payload.
type envelope struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

// roundView is the stream shape of a prepared round. The engine's event
// carries the full question; while the round is live the browser must only
// see what the state endpoint would show it, so the stream ships the same
// redacted questionView.
type roundView struct {
	Round    int          `json:"round"`
	Turn     int          `json:"turn"`
	Question questionView `json:"question"`
}

// streamData strips server-only fields from events before they leave the
// process. Everything else is forwarded as-is.
func streamData(event domain.Event) any {
	prepared, ok := event.(domain.RoundPreparedEvent)
	if !ok {
		return event
	}
	return roundView{
		Round: prepared.Round,
		Turn:  prepared.Turn,
		Question: questionView{
			Mode:       prepared.Question.Mode.String(),
			Options:    prepared.Question.Options,
			Disabled:   prepared.Question.Disabled,
			PreviewURL: prepared.Question.Track.PreviewURL,
			CoverURL:   prepared.Question.Track.CoverURL,
		},
	}
}

// handleEvents streams every domain event to the browser as SSE. One
// stream per session; events are fan-out, match state is shared anyway.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.badRequest(w, "streaming unsupported")
		return
	}

	ctx := s.ensureSession(w, r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher.Flush()

	client := make(chan domain.Event, sseBufferSize)
	subID := s.events.SubscribeAll(func(event domain.Event) {
		select {
		case client <- event:
		default:
			// Slow client; drop rather than block the bus.
		}
	})
	defer s.events.Unsubscribe(subID)

	s.logger.Debug("sse client connected", slog.String("session_id", ctx.ID))

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			s.logger.Debug("sse client disconnected", slog.String("session_id", ctx.ID))
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event := <-client:
			payload, err := json.Marshal(envelope{
				Type: string(event.Type()),
				At:   event.Timestamp(),
				Data: streamData(event),
			})
			if err != nil {
				s.logger.Warn("event encode failed",
					slog.String("event_type", string(event.Type())),
					slog.String("error", err.Error()))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type(), payload)
			flusher.Flush()
		}
	}
}
