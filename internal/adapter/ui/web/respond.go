package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON renders v with the given status. Encoding failures are logged;
// the status line has already gone out by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to an HTTP status and renders it. Login
// failures surface as plain message strings the UI shows inline.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrThemeLocked):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientCoins),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrInvalidVolume),
		errors.Is(err, domain.ErrNotEnoughSongs):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRoundLocked),
		errors.Is(err, domain.ErrMatchNotRunning),
		errors.Is(err, domain.ErrMatchFinished),
		errors.Is(err, domain.ErrNoCharges),
		errors.Is(err, domain.ErrHintAlreadyUsed),
		errors.Is(err, domain.ErrListenLimit),
		errors.Is(err, domain.ErrInvalidPreviewHandle):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("error", err.Error()))
		s.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer func() {
		_ = r.Body.Close()
	}()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// badRequest renders a 400 with the given message.
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
