package web

import (
	"net/http"

	"github.com/tejashwikalptaru/superquiz/internal/service/progression"
)

func (s *Server) handleShopList(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, progression.ShopItems)
}

type purchaseRequest struct {
	ItemID string `json:"itemId"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx, _, err := s.requireUser(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req purchaseRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	user, err := s.progression.PurchaseItem(ctx.UserID, req.ItemID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newUserView(user))
}

// themeView augments the theme table with the caller's unlock state.
type themeView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MinLevel int    `json:"minLevel"`
	Emoji    string `json:"emoji"`
	Unlocked bool   `json:"unlocked"`
	Active   bool   `json:"active"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	ctx := s.ensureSession(w, r)

	level := 1
	if !ctx.Guest() {
		if user, err := s.progression.User(ctx.UserID); err == nil {
			level = user.Level
		}
	}

	views := make([]themeView, 0, len(progression.Themes))
	for _, theme := range progression.Themes {
		views = append(views, themeView{
			ID:       theme.ID,
			Name:     theme.Name,
			MinLevel: theme.MinLevel,
			Emoji:    theme.Emoji,
			Unlocked: level >= theme.MinLevel,
			Active:   theme.ID == ctx.ThemeID,
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

type themeSelectRequest struct {
	ThemeID string `json:"themeId"`
}

func (s *Server) handleThemeSelect(w http.ResponseWriter, r *http.Request) {
	ctx, _, err := s.requireUser(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req themeSelectRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	user, err := s.progression.UpdateTheme(ctx.UserID, req.ThemeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.SetTheme(ctx.ID, req.ThemeID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newUserView(user))
}

// badgeView augments the badge table with the caller's unlock state.
type badgeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	ctx := s.ensureSession(w, r)

	unlocked := map[string]bool{}
	if !ctx.Guest() {
		if user, err := s.progression.User(ctx.UserID); err == nil {
			for _, id := range user.Badges {
				unlocked[id] = true
			}
		}
	}

	views := make([]badgeView, 0, len(progression.Badges))
	for _, badge := range progression.Badges {
		views = append(views, badgeView{
			ID:          badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Icon:        badge.Icon,
			Unlocked:    unlocked[badge.ID],
		})
	}
	s.writeJSON(w, http.StatusOK, views)
}

// leaderboardEntry is one row of the public ranking.
type leaderboardEntry struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Wins     int    `json:"wins"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	users, err := s.progression.Leaderboard()
	if err != nil {
		s.writeError(w, err)
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, leaderboardEntry{
			Username: u.Username,
			Avatar:   u.Avatar,
			Level:    u.Level,
			XP:       u.XP,
			Wins:     u.Stats.TotalWins,
		})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	records, err := s.sessions.RecentHistory()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

type volumeRequest struct {
	Volume float64 `json:"volume"`
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	ctx := s.ensureSession(w, r)

	var req volumeRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if err := s.sessions.SetVolume(ctx.ID, req.Volume); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}
