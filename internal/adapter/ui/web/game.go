package web

import (
	"net/http"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/service/match"
)

type matchStartRequest struct {
	Mode       string `json:"mode"`
	Style      string `json:"style"`
	Difficulty string `json:"difficulty"`
	Genre      string `json:"genre"`
	Rounds     int    `json:"rounds"`
	Players    [2]struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"players"`
}

func (s *Server) handleMatchStart(w http.ResponseWriter, r *http.Request) {
	var req matchStartRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}

	mode := domain.GameMode(req.Mode)
	if mode != domain.ModeSolo && mode != domain.ModeDuo {
		s.badRequest(w, "unknown game mode")
		return
	}
	style := domain.MatchStyle(req.Style)
	if style != domain.StyleRounds && style != domain.StyleSurvival {
		s.badRequest(w, "unknown match style")
		return
	}
	difficulty := domain.Difficulty(req.Difficulty)
	if difficulty != domain.DifficultyNormal && difficulty != domain.DifficultyHard {
		s.badRequest(w, "unknown difficulty")
		return
	}
	if style == domain.StyleRounds && req.Rounds <= 0 {
		s.badRequest(w, "rounds must be positive")
		return
	}

	setup := match.Setup{
		Mode:       mode,
		Style:      style,
		Difficulty: difficulty,
		Genre:      domain.Genre(req.Genre),
		Rounds:     req.Rounds,
	}
	for i := range req.Players {
		setup.Players[i] = match.PlayerSetup{
			Name:   req.Players[i].Name,
			Avatar: req.Players[i].Avatar,
		}
	}

	// A logged-in account always occupies slot 0 and brings its inventory.
	ctx := s.ensureSession(w, r)
	if !ctx.Guest() {
		user, err := s.progression.User(ctx.UserID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		setup.Players[0].Name = user.Username
		setup.Players[0].Avatar = user.Avatar
		setup.Players[0].UserID = user.ID
		setup.Players[0].Inventory = user.Inventory
	}

	if err := s.matches.Start(r.Context(), setup); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, s.matchView())
}

func (s *Server) handleMatchReset(w http.ResponseWriter, _ *http.Request) {
	s.matches.Reset()
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleMatchState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.matchView())
}

type answerRequest struct {
	Option string `json:"option"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if req.Option == "" {
		s.badRequest(w, "option is required")
		return
	}
	if err := s.matches.Answer(req.Option); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.matchView())
}

func (s *Server) handleSkip(w http.ResponseWriter, _ *http.Request) {
	if err := s.matches.Skip(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.matchView())
}

func (s *Server) handleHint(w http.ResponseWriter, _ *http.Request) {
	if err := s.matches.Hint(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.matchView())
}

func (s *Server) handlePass(w http.ResponseWriter, _ *http.Request) {
	if err := s.matches.Pass(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.matchView())
}

func (s *Server) handlePreviewPlay(w http.ResponseWriter, _ *http.Request) {
	if err := s.matches.PlayPreview(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handlePreviewStop(w http.ResponseWriter, _ *http.Request) {
	if err := s.matches.StopPreview(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

// questionView hides the answer while the round is live: the browser only
// learns the correct option and track identity once the round locks.
type questionView struct {
	Mode       string          `json:"mode"`
	Options    []string        `json:"options"`
	Disabled   map[string]bool `json:"disabled"`
	PreviewURL string          `json:"previewUrl"`
	CoverURL   string          `json:"coverUrl,omitempty"`
	Correct    string          `json:"correct,omitempty"`
	Title      string          `json:"title,omitempty"`
	Artist     string          `json:"artist,omitempty"`
}

type matchView struct {
	Phase        string               `json:"phase"`
	Mode         domain.GameMode      `json:"mode"`
	Style        domain.MatchStyle    `json:"style"`
	Difficulty   domain.Difficulty    `json:"difficulty"`
	Genre        domain.Genre         `json:"genre"`
	Round        int                  `json:"round"`
	TotalRounds  int                  `json:"totalRounds"`
	Turn         int                  `json:"turn"`
	DoublePoints bool                 `json:"doublePoints"`
	Contestants  [2]domain.Contestant `json:"contestants"`
	Question     questionView         `json:"question"`
	HintUsed     bool                 `json:"hintUsed"`
	ListensUsed  int                  `json:"listensUsed"`
	Result       *domain.MatchResult  `json:"result,omitempty"`
}

func (s *Server) matchView() matchView {
	snap := s.matches.Snapshot()

	view := matchView{
		Phase:        snap.Phase.String(),
		Mode:         snap.Mode,
		Style:        snap.Style,
		Difficulty:   snap.Difficulty,
		Genre:        snap.Genre,
		Round:        snap.Round,
		TotalRounds:  snap.TotalRounds,
		Turn:         snap.Turn,
		DoublePoints: snap.DoublePoints,
		Contestants:  snap.Contestants,
		HintUsed:     snap.HintUsed,
		ListensUsed:  snap.ListensUsed,
		Result:       snap.Result,
	}

	view.Question = questionView{
		Mode:       snap.Question.Mode.String(),
		Options:    snap.Question.Options,
		Disabled:   snap.Question.Disabled,
		PreviewURL: snap.Question.Track.PreviewURL,
		CoverURL:   snap.Question.Track.CoverURL,
	}
	if snap.Phase == domain.PhaseLocked || snap.Phase == domain.PhaseFinished {
		view.Question.Correct = snap.Question.Correct
		view.Question.Title = snap.Question.Track.Title
		view.Question.Artist = snap.Question.Track.Artist
	}
	return view
}
