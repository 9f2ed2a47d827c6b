package web

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
	"github.com/tejashwikalptaru/superquiz/internal/service/match"
	"github.com/tejashwikalptaru/superquiz/internal/service/session"
	"github.com/tejashwikalptaru/superquiz/internal/testutil"
)

// stubMatch records calls and serves a canned snapshot.
type stubMatch struct {
	mu       sync.Mutex
	started  []match.Setup
	answers  []string
	err      error
	snapshot match.Snapshot
}

func (m *stubMatch) Start(_ context.Context, setup match.Setup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.started = append(m.started, setup)
	return nil
}

func (m *stubMatch) Answer(option string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.answers = append(m.answers, option)
	return nil
}

func (m *stubMatch) Skip() error        { return m.err }
func (m *stubMatch) Hint() error        { return m.err }
func (m *stubMatch) Pass() error        { return m.err }
func (m *stubMatch) PlayPreview() error { return m.err }
func (m *stubMatch) StopPreview() error { return m.err }
func (m *stubMatch) Reset()             {}

func (m *stubMatch) Snapshot() match.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// stubAccounts is an in-memory ProgressionService.
type stubAccounts struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{users: make(map[string]*domain.User)}
}

func (a *stubAccounts) Register(username, password, avatar string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}
	user := &domain.User{
		ID:       fmt.Sprintf("u%d", len(a.users)+1),
		Username: username,
		Password: password,
		Avatar:   avatar,
		Level:    1,
	}
	a.users[user.ID] = user
	return user, nil
}

func (a *stubAccounts) Login(username, password string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (a *stubAccounts) User(id string) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, ok := a.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (a *stubAccounts) Leaderboard() ([]*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	users := make([]*domain.User, 0, len(a.users))
	for _, u := range a.users {
		users = append(users, u)
	}
	return users, nil
}

func (a *stubAccounts) UpdateTheme(userID, themeID string) (*domain.User, error) {
	user, err := a.User(userID)
	if err != nil {
		return nil, err
	}
	user.CurrentThemeID = themeID
	return user, nil
}

func (a *stubAccounts) PurchaseItem(userID, _ string) (*domain.User, error) {
	user, err := a.User(userID)
	if err != nil {
		return nil, err
	}
	return user, domain.ErrInsufficientCoins
}

type webHarness struct {
	server   *httptest.Server
	client   *http.Client
	matches  *stubMatch
	accounts *stubAccounts
	history  *memory.HistoryRepository
	bus      *eventbus.SyncEventBus
}

func newWebHarness(t *testing.T) *webHarness {
	t.Helper()

	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus()
	history := memory.NewHistoryRepository()
	matches := &stubMatch{}
	accounts := newStubAccounts()
	sessions := session.NewService(history, log)

	srv := NewServer("127.0.0.1:0", matches, accounts, sessions, bus, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(func() {
		_ = bus.Close()
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := ts.Client()
	client.Jar = jar

	return &webHarness{
		server:   ts,
		client:   client,
		matches:  matches,
		accounts: accounts,
		history:  history,
		bus:      bus,
	}
}

func (h *webHarness) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (h *webHarness) register(t *testing.T, username string) userView {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/auth/register", credentialsRequest{
		Username: username,
		Password: "senha123",
		Avatar:   "🎤",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[userView](t, resp)
}

func TestRegisterAndMe(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	user := h.register(t, "maria")
	assert.Equal(t, "maria", user.Username)
	assert.NotEmpty(t, user.ID)

	resp := h.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := decode[struct {
		User    userView `json:"user"`
		ThemeID string   `json:"themeId"`
		Volume  float64  `json:"volume"`
	}](t, resp)
	assert.Equal(t, "maria", me.User.Username)
	assert.Equal(t, session.DefaultThemeID, me.ThemeID)
	assert.Equal(t, session.DefaultVolume, me.Volume)
}

func TestMeAsGuestUnauthorized(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodGet, "/api/auth/me", nil)
	defer func() {
		_ = resp.Body.Close()
	}()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodPost, "/api/auth/login", credentialsRequest{
		Username: "ghost",
		Password: "nope",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[errorResponse](t, resp)
	assert.Contains(t, body.Error, "invalid username or password")
}

func TestLogout(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	h.register(t, "maria")
	resp := h.do(t, http.MethodPost, "/api/auth/logout", nil)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/auth/me", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVolume(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodPost, "/api/volume", volumeRequest{Volume: 1.5})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/volume", volumeRequest{Volume: 0.4})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMatchStartValidation(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	req := matchStartRequest{
		Mode:       "3p",
		Style:      "rounds",
		Difficulty: "normal",
		Genre:      "sertanejo",
		Rounds:     10,
	}
	resp := h.do(t, http.MethodPost, "/api/match", req)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req.Mode = "2p"
	req.Rounds = 0
	resp = h.do(t, http.MethodPost, "/api/match", req)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatchStartBindsAccountToSlotZero(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	user := h.register(t, "maria")
	h.accounts.users[user.ID].Inventory = domain.Inventory{Skips: 2}

	req := matchStartRequest{
		Mode:       "1p",
		Style:      "rounds",
		Difficulty: "hard",
		Genre:      "pagode",
		Rounds:     15,
	}
	req.Players[0].Name = "ignored"
	req.Players[1].Name = "Robô"
	resp := h.do(t, http.MethodPost, "/api/match", req)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	h.matches.mu.Lock()
	defer h.matches.mu.Unlock()
	require.Len(t, h.matches.started, 1)
	setup := h.matches.started[0]
	assert.Equal(t, "maria", setup.Players[0].Name)
	assert.Equal(t, user.ID, setup.Players[0].UserID)
	assert.Equal(t, 2, setup.Players[0].Inventory.Skips)
	assert.Equal(t, "Robô", setup.Players[1].Name)
	assert.Equal(t, domain.GenrePagode, setup.Genre)
}

func TestMatchErrorMapping(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	h.matches.err = domain.ErrRoundLocked
	resp := h.do(t, http.MethodPost, "/api/match/skip", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	h.matches.err = domain.ErrNotEnoughSongs
	req := matchStartRequest{Mode: "2p", Style: "survival", Difficulty: "normal", Genre: "gospel"}
	resp = h.do(t, http.MethodPost, "/api/match", req)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnswerRequiresOption(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodPost, "/api/match/answer", answerRequest{})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/match/answer", answerRequest{Option: "Alvo"})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	h.matches.mu.Lock()
	defer h.matches.mu.Unlock()
	assert.Equal(t, []string{"Alvo"}, h.matches.answers)
}

func TestMatchStateHidesAnswerWhilePlaying(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	h.matches.snapshot = match.Snapshot{
		Phase: domain.PhasePlaying,
		Question: domain.Question{
			Track:   domain.Track{Title: "Evidências", Artist: "Chitãozinho & Xororó", PreviewURL: "https://cdn.example.com/p.mp3"},
			Correct: "Evidências",
			Options: []string{"Evidências", "Outra"},
		},
	}

	resp := h.do(t, http.MethodGet, "/api/match", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[matchView](t, resp)
	assert.Empty(t, view.Question.Correct)
	assert.Empty(t, view.Question.Title)
	assert.Equal(t, []string{"Evidências", "Outra"}, view.Question.Options)

	h.matches.snapshot.Phase = domain.PhaseLocked
	resp = h.do(t, http.MethodGet, "/api/match", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decode[matchView](t, resp)
	assert.Equal(t, "Evidências", view.Question.Correct)
	assert.Equal(t, "Evidências", view.Question.Title)
}

func TestThemesForGuest(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodGet, "/api/themes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	themes := decode[[]themeView](t, resp)
	require.NotEmpty(t, themes)

	for _, theme := range themes {
		assert.Equal(t, theme.MinLevel <= 1, theme.Unlocked)
		assert.Equal(t, theme.ID == session.DefaultThemeID, theme.Active)
	}
}

func TestPurchaseRequiresLogin(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	resp := h.do(t, http.MethodPost, "/api/shop/purchase", purchaseRequest{ItemID: "hint"})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPurchaseInsufficientCoins(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	h.register(t, "maria")
	resp := h.do(t, http.MethodPost, "/api/shop/purchase", purchaseRequest{ItemID: "hint"})
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryEndpoint(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	require.NoError(t, h.history.Append(domain.HistoryRecord{WinnerName: "Maria", Date: "01/06/2025"}))

	resp := h.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decode[[]domain.HistoryRecord](t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "Maria", records[0].WinnerName)
}

// openEventStream connects to /api/events and pumps its lines into a
// channel; the channel closes when the stream does.
func (h *webHarness) openEventStream(t *testing.T, ctx context.Context) <-chan string {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.server.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := h.client.Do(req)
	require.NoError(t, err)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		defer func() {
			_ = resp.Body.Close()
		}()
		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- line
		}
	}()

	// Give the handler a moment to subscribe before the caller publishes.
	require.Eventually(t, func() bool {
		return h.bus.HasSubscribers(domain.EventTurnChanged)
	}, time.Second, 10*time.Millisecond)

	return lines
}

// nextEvent reads the stream until one complete event+data pair arrives.
func nextEvent(t *testing.T, lines <-chan string) (string, string) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	var eventLine, dataLine string
	for eventLine == "" || dataLine == "" {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for SSE event")
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed before event arrived")
			}
			switch {
			case strings.HasPrefix(line, "event: "):
				eventLine = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			case strings.HasPrefix(line, "data: "):
				dataLine = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}
	return eventLine, dataLine
}

func TestEventStreamForwardsDomainEvents(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := h.openEventStream(t, ctx)
	h.bus.Publish(domain.NewTurnChangedEvent(3, 1))

	eventLine, dataLine := nextEvent(t, lines)
	assert.Equal(t, string(domain.EventTurnChanged), eventLine)

	var payload struct {
		Type string `json:"type"`
		Data struct {
			Round int `json:"Round"`
			Turn  int `json:"Turn"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(dataLine), &payload))
	assert.Equal(t, string(domain.EventTurnChanged), payload.Type)
	assert.Equal(t, 3, payload.Data.Round)
	assert.Equal(t, 1, payload.Data.Turn)

	cancel()
}

func TestEventStreamHidesAnswerOnRoundPrepared(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreHTTPGoroutines()...)
	h := newWebHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := h.openEventStream(t, ctx)
	h.bus.Publish(domain.NewRoundPreparedEvent(2, 0, domain.Question{
		Track: domain.Track{
			Title:      "Evidências",
			Artist:     "Chitãozinho & Xororó",
			PreviewURL: "https://cdn.example.com/p.mp3",
		},
		Mode:    domain.AskArtist,
		Correct: "Chitãozinho & Xororó",
		Options: []string{"Chitãozinho & Xororó", "Zezé Di Camargo & Luciano"},
	}))

	eventLine, dataLine := nextEvent(t, lines)
	assert.Equal(t, string(domain.EventRoundPrepared), eventLine)

	// The track title only exists outside the options; it must not reach
	// the wire before the round locks.
	assert.NotContains(t, dataLine, "Evidências")

	var payload struct {
		Data struct {
			Round    int `json:"round"`
			Turn     int `json:"turn"`
			Question struct {
				Mode       string   `json:"mode"`
				Options    []string `json:"options"`
				PreviewURL string   `json:"previewUrl"`
				Correct    string   `json:"correct"`
				Title      string   `json:"title"`
				Artist     string   `json:"artist"`
			} `json:"question"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(dataLine), &payload))
	assert.Equal(t, 2, payload.Data.Round)
	assert.Equal(t, "artist", payload.Data.Question.Mode)
	assert.Len(t, payload.Data.Question.Options, 2)
	assert.Equal(t, "https://cdn.example.com/p.mp3", payload.Data.Question.PreviewURL)
	assert.Empty(t, payload.Data.Question.Correct)
	assert.Empty(t, payload.Data.Question.Title)
	assert.Empty(t, payload.Data.Question.Artist)

	cancel()
}
