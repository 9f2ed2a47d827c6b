package web

import (
	"net/http"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/service/session"
)

// sessionCookie is the cookie carrying the session ID.
const sessionCookie = "session_id"

// userView is the account shape exposed to the browser. The stored
// password never leaves the server.
type userView struct {
	ID             string                `json:"id"`
	Username       string                `json:"username"`
	Avatar         string                `json:"avatar"`
	XP             int                   `json:"xp"`
	Level          int                   `json:"level"`
	Coins          int                   `json:"coins"`
	Inventory      domain.Inventory      `json:"inventory"`
	Badges         []string              `json:"badges"`
	DailyChallenge domain.DailyChallenge `json:"dailyChallenge"`
	Stats          domain.UserStats      `json:"stats"`
	CurrentThemeID string                `json:"currentThemeId"`
}

func newUserView(u *domain.User) userView {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return userView{
		ID:             u.ID,
		Username:       u.Username,
		Avatar:         u.Avatar,
		XP:             u.XP,
		Level:          u.Level,
		Coins:          u.Coins,
		Inventory:      u.Inventory,
		Badges:         badges,
		DailyChallenge: u.DailyChallenge,
		Stats:          u.Stats,
		CurrentThemeID: u.CurrentThemeID,
	}
}

// ensureSession resolves the request's session, creating one (and setting
// the cookie) when none exists.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) session.Context {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if ctx, err := s.sessions.Get(cookie.Value); err == nil {
			return ctx
		}
	}

	ctx := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    ctx.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx
}

// requireUser resolves the session's bound account or fails with
// ErrNotAuthenticated.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (session.Context, *domain.User, error) {
	ctx := s.ensureSession(w, r)
	if ctx.Guest() {
		return ctx, nil, domain.ErrNotAuthenticated
	}
	user, err := s.progression.User(ctx.UserID)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, user, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	user, err := s.progression.Register(req.Username, req.Password, req.Avatar)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := s.ensureSession(w, r)
	if err := s.sessions.BindUser(ctx.ID, user); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newUserView(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	user, err := s.progression.Login(req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := s.ensureSession(w, r)
	if err := s.sessions.BindUser(ctx.ID, user); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newUserView(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := s.ensureSession(w, r)
	if err := s.sessions.ClearUser(ctx.ID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx, user, err := s.requireUser(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		User    userView `json:"user"`
		ThemeID string   `json:"themeId"`
		Volume  float64  `json:"volume"`
	}{
		User:    newUserView(user),
		ThemeID: ctx.ThemeID,
		Volume:  ctx.Volume,
	})
}
