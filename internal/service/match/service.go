// Package match implements the game's turn state machine: rounds, scoring,
// power-ups, the answer countdown, the bot seat and winner resolution. It
// is the only writer of match state; everything the UI shows flows out of
// it as events.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
	"github.com/tejashwikalptaru/superquiz/internal/service/bot"
	"github.com/tejashwikalptaru/superquiz/internal/service/pool"
	"github.com/tejashwikalptaru/superquiz/internal/service/question"
)

// Per-match base power-up charges and lives.
const (
	baseSkips     = 1
	baseHints     = 1
	basePasses    = 1
	startingLives = 3

	// hardListenLimit caps preview listens per round on hard difficulty.
	hardListenLimit = 3
)

// hardSeekOffsets are the fixed preview windows on hard difficulty,
// indexed by listens already used.
var hardSeekOffsets = [hardListenLimit]time.Duration{
	0,
	10 * time.Second,
	20 * time.Second,
}

// Progression is the slice of account progression the engine needs:
// rewards at match end and inventory deduction when a power-up charge
// beyond the free base is spent.
type Progression interface {
	UpdateAfterMatch(userID string, won bool, score int, genre domain.Genre, roundsPlayed int, style domain.MatchStyle) (*domain.MatchRewards, error)
	ConsumeInventoryItem(userID string, kind domain.ShopItemKind)
}

// PlayerSetup describes one contestant slot at match start.
type PlayerSetup struct {
	Name   string
	Avatar string

	// UserID is set when the slot is backed by an account. Only slot 0
	// carries one; slot 1 is either the bot or a guest.
	UserID string

	// Inventory is the account's persistent power-up stock, folded into
	// the slot's starting charges.
	Inventory domain.Inventory
}

// Setup is the full configuration of a new match.
type Setup struct {
	Mode       domain.GameMode
	Style      domain.MatchStyle
	Difficulty domain.Difficulty
	Genre      domain.Genre

	// Rounds is the round target for rounds style; ignored for survival.
	Rounds int

	Players [2]PlayerSetup
}

// Service is the match engine.
//
// Thread-safety: this implementation is thread-safe. All timer callbacks
// are guarded by a sequence counter; a callback whose sequence is stale
// does nothing.
type Service struct {
	cfg         Config
	questions   *question.Builder
	pools       *pool.Service
	bots        *bot.Policy
	audio       ports.AudioEngine
	events      ports.EventBus
	history     ports.HistoryRepository
	matchLog    ports.MatchLogger
	progression Progression
	logger      *slog.Logger
	rng         *rand.Rand

	mu sync.Mutex

	// seq invalidates outstanding timer callbacks. Bumped on every lock
	// transition, round change and reset.
	seq uint64

	// timers tracks live AfterFunc handles so Reset can stop them.
	timers []*time.Timer

	// pending buffers events while the lock is held; they are published
	// after release.
	pending []domain.Event

	phase       domain.MatchPhase
	mode        domain.GameMode
	style       domain.MatchStyle
	difficulty  domain.Difficulty
	genre       domain.Genre
	totalRounds int
	round       int
	turn        int
	contestants [2]domain.Contestant
	songs       []domain.Track
	question    domain.Question
	hintUsed    bool
	listens     int
	remaining   time.Duration
	handle      domain.PreviewHandle
	progressOn  bool
	userID      string
	result      *domain.MatchResult

	// now is the clock source for history timestamps, swappable in tests.
	now func() time.Time
}

// NewService creates a match engine.
func NewService(
	cfg Config,
	questions *question.Builder,
	pools *pool.Service,
	bots *bot.Policy,
	audio ports.AudioEngine,
	events ports.EventBus,
	history ports.HistoryRepository,
	matchLog ports.MatchLogger,
	progression Progression,
	rng *rand.Rand,
	logger *slog.Logger,
) *Service {
	return &Service{
		cfg:         cfg,
		questions:   questions,
		pools:       pools,
		bots:        bots,
		audio:       audio,
		events:      events,
		history:     history,
		matchLog:    matchLog,
		progression: progression,
		rng:         rng,
		logger:      logger.With(slog.String("service", "match")),
		phase:       domain.PhaseSetup,
		now:         time.Now,
	}
}

// Start builds the song pool and begins a match. Fails with
// domain.ErrNotEnoughSongs when the catalog cannot fill the pool.
func (s *Service) Start(ctx context.Context, setup Setup) error {
	songs, err := s.pools.Build(ctx, setup.Genre)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.phase == domain.PhasePlaying || s.phase == domain.PhaseLocked {
		s.mu.Unlock()
		return domain.NewServiceError("MatchService", "Start", "a match is already running", nil)
	}

	s.seq++
	s.stopTimersLocked()

	s.mode = setup.Mode
	s.style = setup.Style
	s.difficulty = setup.Difficulty
	s.genre = setup.Genre
	s.songs = songs
	s.result = nil
	s.userID = setup.Players[0].UserID

	s.totalRounds = setup.Rounds
	if setup.Style == domain.StyleSurvival {
		s.totalRounds = domain.SurvivalRoundTarget
	}

	inv := setup.Players[0].Inventory
	s.contestants[0] = domain.Contestant{
		Name:    setup.Players[0].Name,
		Avatar:  setup.Players[0].Avatar,
		Skips:   baseSkips + inv.Skips,
		Hints:   baseHints + inv.Hints,
		Passes:  basePasses,
		Lives:   startingLives + inv.Lives,
		IsGuest: setup.Players[0].UserID == "",
	}
	s.contestants[1] = domain.Contestant{
		Name:    setup.Players[1].Name,
		Avatar:  setup.Players[1].Avatar,
		Skips:   1,
		Hints:   0,
		Passes:  1,
		Lives:   startingLives,
		IsBot:   setup.Mode == domain.ModeSolo,
		IsGuest: true,
	}

	s.round = 0
	s.turn = s.rng.Intn(2)
	s.phase = domain.PhasePlaying

	s.emit(domain.NewMatchStartedEvent(s.mode, s.style, s.difficulty, s.genre, s.totalRounds, s.turn))
	s.prepareRoundLocked()
	s.mu.Unlock()
	s.flush()

	return nil
}

// Answer submits the current contestant's pick and locks the round.
func (s *Service) Answer(option string) error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.resolveAnswerLocked(option)
	s.mu.Unlock()
	s.flush()
	return nil
}

// Skip swaps the current song for the next one without ending the turn.
// The skipped track moves to the end of the pool.
func (s *Service) Skip() error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	player := &s.contestants[s.turn]
	if player.Skips <= 0 {
		s.mu.Unlock()
		return domain.ErrNoCharges
	}

	s.deductInventoryLocked(player.Skips, baseSkips, domain.ItemSkip)
	player.Skips--

	// Invalidate the running countdown; prepare arms a fresh one.
	s.seq++
	s.stopPreviewLocked()
	if len(s.songs) > 1 {
		idx := s.round % len(s.songs)
		moved := s.songs[idx]
		s.songs = append(s.songs[:idx], s.songs[idx+1:]...)
		s.songs = append(s.songs, moved)
	}

	s.emit(domain.NewSongSkippedEvent(s.round, s.turn))
	s.prepareRoundLocked()
	s.mu.Unlock()
	s.flush()
	return nil
}

// Hint disables two wrong options. One hint per round.
func (s *Service) Hint() error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.hintUsed {
		s.mu.Unlock()
		return domain.ErrHintAlreadyUsed
	}

	player := &s.contestants[s.turn]
	if player.Hints <= 0 {
		s.mu.Unlock()
		return domain.ErrNoCharges
	}

	s.deductInventoryLocked(player.Hints, baseHints, domain.ItemHint)
	player.Hints--
	s.hintUsed = true

	wrong := s.question.WrongOptions()
	s.rng.Shuffle(len(wrong), func(i, j int) {
		wrong[i], wrong[j] = wrong[j], wrong[i]
	})
	if len(wrong) > 2 {
		wrong = wrong[:2]
	}
	for _, option := range wrong {
		s.question.Disabled[option] = true
	}

	s.emit(domain.NewHintUsedEvent(s.round, s.turn, wrong))
	s.mu.Unlock()
	s.flush()
	return nil
}

// Pass forfeits the turn: the current track leaves the pool permanently and
// the other contestant plays the same round number.
func (s *Service) Pass() error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	player := &s.contestants[s.turn]
	if player.Passes <= 0 {
		s.mu.Unlock()
		return domain.ErrNoCharges
	}
	player.Passes--

	s.phase = domain.PhaseLocked
	s.seq++
	s.stopPreviewLocked()

	s.emit(domain.NewAnswerResolvedEvent(s.round, s.turn, domain.OutcomePassed, "", s.question.Correct, 0, false))

	seq := s.seq
	s.schedule(s.cfg.RevealPass, seq, func() {
		if len(s.songs) > 1 {
			idx := s.round % len(s.songs)
			s.songs = append(s.songs[:idx], s.songs[idx+1:]...)
		}
		s.turn = 1 - s.turn
		s.phase = domain.PhasePlaying
		s.emit(domain.NewSongPassedEvent(s.round, s.turn, len(s.songs)))
		s.emit(domain.NewTurnChangedEvent(s.round, s.turn))
		s.prepareRoundLocked()
	})

	s.mu.Unlock()
	s.flush()
	return nil
}

// PlayPreview starts (or restarts) the preview for the current round. Hard
// difficulty limits listens and pins the seek offsets; normal difficulty
// seeks to a random spot between 5s and 15s.
func (s *Service) PlayPreview() error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.handle == domain.InvalidPreviewHandle {
		s.mu.Unlock()
		return domain.ErrInvalidPreviewHandle
	}
	if s.difficulty == domain.DifficultyHard && s.listens >= hardListenLimit {
		s.mu.Unlock()
		return domain.ErrListenLimit
	}

	var offset time.Duration
	if s.difficulty == domain.DifficultyHard {
		offset = hardSeekOffsets[s.listens]
	} else {
		offset = 5*time.Second + time.Duration(s.rng.Int63n(int64(10*time.Second)))
	}

	if err := s.audio.Play(s.handle, offset); err != nil {
		s.mu.Unlock()
		return err
	}
	s.listens++

	s.emit(domain.NewPreviewStartedEvent(offset, domain.PreviewLimit))
	s.scheduleProgressLocked(s.seq)

	s.mu.Unlock()
	s.flush()
	return nil
}

// StopPreview halts the preview. Stopping a stopped preview is a no-op.
func (s *Service) StopPreview() error {
	s.mu.Lock()
	if err := s.requirePlayingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.stopPreviewLocked()
	s.mu.Unlock()
	s.flush()
	return nil
}

// Reset abandons the match: outstanding timers are cancelled, audio stops
// and the engine returns to setup.
func (s *Service) Reset() {
	s.mu.Lock()
	s.seq++
	s.stopTimersLocked()
	s.unloadPreviewLocked()
	s.progressOn = false
	s.phase = domain.PhaseSetup
	s.result = nil
	s.songs = nil
	s.emit(domain.NewMatchResetEvent())
	s.mu.Unlock()
	s.flush()
}

// Snapshot is a point-in-time copy of the visible match state.
type Snapshot struct {
	Phase        domain.MatchPhase
	Mode         domain.GameMode
	Style        domain.MatchStyle
	Difficulty   domain.Difficulty
	Genre        domain.Genre
	Round        int
	TotalRounds  int
	Turn         int
	DoublePoints bool
	Contestants  [2]domain.Contestant
	Question     domain.Question
	HintUsed     bool
	ListensUsed  int
	PoolSize     int
	Result       *domain.MatchResult
}

// Snapshot returns a copy of the current state for presentation.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:        s.phase,
		Mode:         s.mode,
		Style:        s.style,
		Difficulty:   s.difficulty,
		Genre:        s.genre,
		Round:        s.round,
		TotalRounds:  s.totalRounds,
		Turn:         s.turn,
		DoublePoints: s.doublePointsLocked(),
		Contestants:  s.contestants,
		HintUsed:     s.hintUsed,
		ListensUsed:  s.listens,
		PoolSize:     len(s.songs),
	}

	snap.Question = s.question
	snap.Question.Disabled = make(map[string]bool, len(s.question.Disabled))
	for option, disabled := range s.question.Disabled {
		snap.Question.Disabled[option] = disabled
	}

	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}
	return snap
}

// Phase returns the current match phase.
func (s *Service) Phase() domain.MatchPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// --- internals; all *Locked methods require s.mu held ---

func (s *Service) requirePlayingLocked() error {
	switch s.phase {
	case domain.PhasePlaying:
		return nil
	case domain.PhaseLocked:
		return domain.ErrRoundLocked
	case domain.PhaseFinished:
		return domain.ErrMatchFinished
	default:
		return domain.ErrMatchNotRunning
	}
}

// doublePointsLocked reports whether the current round pays double. Only
// the last two rounds of a rounds-style match do.
func (s *Service) doublePointsLocked() bool {
	return s.style == domain.StyleRounds && s.totalRounds > 0 && s.round >= s.totalRounds-2
}

// deductInventoryLocked charges the human slot's persistent inventory when
// a power-up use dips past the free base. Best-effort: the match charge is
// spent regardless.
func (s *Service) deductInventoryLocked(remaining, base int, kind domain.ShopItemKind) {
	if s.turn != 0 || s.userID == "" || remaining <= base {
		return
	}
	s.progression.ConsumeInventoryItem(s.userID, kind)
}

// prepareRoundLocked sets up the question and preview for the current
// round and arms the countdown or the bot, depending on whose turn it is.
func (s *Service) prepareRoundLocked() {
	track := s.songs[s.round%len(s.songs)]

	q, err := s.questions.Build(s.songs, track)
	if err != nil {
		s.logger.Warn("question build failed", slog.String("error", err.Error()))
	}
	s.question = q
	s.hintUsed = false
	s.listens = 0
	s.remaining = s.cfg.Countdown
	s.progressOn = false

	s.unloadPreviewLocked()
	handle, err := s.audio.Load(track.PreviewURL)
	if err != nil {
		s.logger.Warn("preview load failed",
			slog.String("track", track.Title),
			slog.String("error", err.Error()))
		handle = domain.InvalidPreviewHandle
	}
	s.handle = handle

	s.emit(domain.NewRoundPreparedEvent(s.round, s.turn, s.question))

	seq := s.seq
	if s.contestants[s.turn].IsBot {
		s.scheduleBotLocked(seq)
	} else {
		// No playable audio means no clock: the player keeps answer,
		// skip and pass but cannot be timed out on a silent round.
		if s.handle != domain.InvalidPreviewHandle {
			s.scheduleCountdownLocked(seq)
		}
		s.maybeTauntLocked(seq)
	}
}

// scheduleCountdownLocked arms the per-second countdown chain for a human
// turn. Disabled when the config countdown is zero.
func (s *Service) scheduleCountdownLocked(seq uint64) {
	if s.cfg.Countdown <= 0 {
		return
	}

	tick := time.Second
	if s.cfg.Countdown < tick {
		tick = s.cfg.Countdown
	}

	var step func()
	step = func() {
		s.remaining -= tick
		if s.remaining > 0 {
			s.emit(domain.NewCountdownTickEvent(s.remaining))
			s.scheduleAsync(tick, seq, step)
			return
		}
		s.emit(domain.NewCountdownTickEvent(0))
		s.resolveTimeoutLocked()
	}
	s.scheduleAsync(tick, seq, step)
}

// scheduleBotLocked arms the bot's think-then-answer timer.
func (s *Service) scheduleBotLocked(seq uint64) {
	delay := s.cfg.BotThink
	if delay <= 0 {
		delay = s.bots.ThinkDelay()
	}

	s.scheduleAsync(delay, seq, func() {
		answer := s.bots.ChooseAnswer(s.question, s.difficulty)
		s.resolveAnswerLocked(answer)
	})
}

// maybeTauntLocked rolls the bot's idle taunt on a human turn.
func (s *Service) maybeTauntLocked(seq uint64) {
	if !s.contestants[1].IsBot || !s.bots.ShouldTaunt() {
		return
	}
	s.emit(domain.NewBotTauntEvent(domain.TauntIdle, s.bots.Taunt(domain.TauntIdle)))
	s.scheduleAsync(s.cfg.TauntClear, seq, func() {
		s.emit(domain.NewBotTauntClearedEvent())
	})
}

// resolveAnswerLocked applies an answer and locks the round.
func (s *Service) resolveAnswerLocked(option string) {
	player := &s.contestants[s.turn]
	correct := s.question.IsCorrect(option)
	double := s.doublePointsLocked()
	multiplier := 1
	if double {
		multiplier = 2
	}

	s.phase = domain.PhaseLocked
	s.seq++
	s.stopPreviewLocked()

	delta := 0
	if correct {
		if s.style != domain.StyleSurvival {
			player.Score += multiplier
			delta = multiplier
		}
		player.Streak++
		if player.Streak == 3 {
			s.applyStreakBonusLocked(player, &delta)
		}
	} else {
		s.applyMissLocked(player, multiplier, &delta)
	}

	if player.IsBot {
		kind := domain.TauntWrong
		if correct {
			kind = domain.TauntCorrect
		}
		s.emit(domain.NewBotTauntEvent(kind, s.bots.Taunt(kind)))
	}

	outcome := domain.OutcomeWrong
	if correct {
		outcome = domain.OutcomeCorrect
	}
	s.emit(domain.NewAnswerResolvedEvent(s.round, s.turn, outcome, option, s.question.Correct, delta, double))

	seq := s.seq
	s.schedule(s.cfg.RevealAnswer, seq, s.advanceLocked)
}

// resolveTimeoutLocked applies an expired countdown. Idempotent: a stale
// timeout on a locked round does nothing.
func (s *Service) resolveTimeoutLocked() {
	if s.phase != domain.PhasePlaying {
		return
	}

	player := &s.contestants[s.turn]
	double := s.doublePointsLocked()
	multiplier := 1
	if double {
		multiplier = 2
	}

	s.phase = domain.PhaseLocked
	s.seq++
	s.stopPreviewLocked()

	delta := 0
	s.applyMissLocked(player, multiplier, &delta)

	s.emit(domain.NewAnswerResolvedEvent(s.round, s.turn, domain.OutcomeTimeout, "", s.question.Correct, delta, double))

	seq := s.seq
	s.schedule(s.cfg.RevealTimeout, seq, s.advanceLocked)
}

// applyMissLocked handles the shared wrong-answer and timeout penalties.
func (s *Service) applyMissLocked(player *domain.Contestant, multiplier int, delta *int) {
	if s.style == domain.StyleSurvival {
		player.Lives--
	} else if s.difficulty == domain.DifficultyHard {
		player.Score -= multiplier
		*delta = -multiplier
	}
	player.Streak = 0
}

// applyStreakBonusLocked pays the third-in-a-row bonus: a point or an
// extra match-local skip charge, 50/50. Survival never pays points.
func (s *Service) applyStreakBonusLocked(player *domain.Contestant, delta *int) {
	bonusPoint := s.rng.Intn(2) == 0 && s.style != domain.StyleSurvival
	if bonusPoint {
		player.Score++
		*delta++
	} else {
		player.Skips++
	}
	s.emit(domain.NewStreakBonusEvent(s.turn, bonusPoint))
}

// advanceLocked moves past a locked round: finish the match when the end
// condition holds, otherwise flip the turn and prepare the next round.
func (s *Service) advanceLocked() {
	nextRound := s.round + 1

	survivalEnd := s.style == domain.StyleSurvival &&
		(s.contestants[0].Lives <= 0 || s.contestants[1].Lives <= 0)
	roundsEnd := s.style == domain.StyleRounds && nextRound >= s.totalRounds

	if survivalEnd || roundsEnd {
		s.finishLocked()
		return
	}

	s.round = nextRound
	s.turn = 1 - s.turn
	s.phase = domain.PhasePlaying
	s.emit(domain.NewTurnChangedEvent(s.round, s.turn))
	s.prepareRoundLocked()
}

// finishLocked resolves the winner, persists the result and applies
// account progression exactly once.
func (s *Service) finishLocked() {
	s.seq++
	s.stopTimersLocked()
	s.unloadPreviewLocked()
	s.progressOn = false
	s.phase = domain.PhaseFinished

	winner := s.winnerLocked()
	result := domain.MatchResult{
		Winner:       winner,
		Contestants:  s.contestants,
		RoundsPlayed: s.round + 1,
		Style:        s.style,
		Difficulty:   s.difficulty,
		Genre:        s.genre,
	}
	s.result = &result

	record := domain.HistoryRecord{
		WinnerName:   "Empate",
		WinnerAvatar: "🤝",
		Score1:       s.contestants[0].Score,
		Score2:       s.contestants[1].Score,
		Date:         s.now().Format("02/01/2006"),
	}
	if winner != domain.DrawSlot {
		record.WinnerName = s.contestants[winner].Name
		record.WinnerAvatar = s.contestants[winner].Avatar
	}

	if err := s.history.Append(record); err != nil {
		s.logger.Warn("history append failed", slog.String("error", err.Error()))
	}
	s.matchLog.LogMatch(record, s.contestants[0].Name, s.contestants[1].Name)

	if s.userID != "" {
		won := winner == 0
		rewards, err := s.progression.UpdateAfterMatch(
			s.userID, won, s.contestants[0].Score, s.genre, result.RoundsPlayed, s.style)
		if err != nil {
			s.logger.Warn("progression update failed", slog.String("error", err.Error()))
		} else if rewards != nil {
			s.logger.Info("match rewards",
				slog.Int("xp", rewards.XPGained),
				slog.Bool("leveled_up", rewards.LeveledUp))
		}
	}

	s.emit(domain.NewMatchFinishedEvent(result))

	s.logger.Info("match finished",
		slog.String("winner", record.WinnerName),
		slog.Int("rounds", result.RoundsPlayed),
		slog.String("style", string(s.style)))
}

// winnerLocked resolves the winning slot, or DrawSlot.
func (s *Service) winnerLocked() int {
	p0, p1 := s.contestants[0], s.contestants[1]

	if s.style == domain.StyleSurvival {
		if p0.Lives > 0 && p1.Lives <= 0 {
			return 0
		}
		if p1.Lives > 0 && p0.Lives <= 0 {
			return 1
		}
	}
	if p0.Score > p1.Score {
		return 0
	}
	if p1.Score > p0.Score {
		return 1
	}
	return domain.DrawSlot
}

// stopPreviewLocked stops playback on the current handle.
func (s *Service) stopPreviewLocked() {
	if s.handle == domain.InvalidPreviewHandle {
		return
	}
	if s.audio.Playing(s.handle) {
		if err := s.audio.Stop(s.handle); err != nil {
			s.logger.Debug("preview stop failed", slog.String("error", err.Error()))
		}
		s.emit(domain.NewPreviewStoppedEvent())
	}
}

// unloadPreviewLocked stops and releases the current handle.
func (s *Service) unloadPreviewLocked() {
	if s.handle == domain.InvalidPreviewHandle {
		return
	}
	s.stopPreviewLocked()
	if err := s.audio.Unload(s.handle); err != nil {
		s.logger.Debug("preview unload failed", slog.String("error", err.Error()))
	}
	s.handle = domain.InvalidPreviewHandle
}

// scheduleProgressLocked arms the preview progress sampling chain.
func (s *Service) scheduleProgressLocked(seq uint64) {
	if s.cfg.ProgressInterval <= 0 || s.progressOn {
		return
	}
	s.progressOn = true

	var step func()
	step = func() {
		if s.handle == domain.InvalidPreviewHandle || !s.audio.Playing(s.handle) {
			s.progressOn = false
			s.emit(domain.NewPreviewStoppedEvent())
			return
		}
		elapsed, err := s.audio.Elapsed(s.handle)
		if err != nil {
			return
		}
		s.emit(domain.NewPreviewProgressEvent(elapsed, domain.PreviewLimit))
		s.scheduleAsync(s.cfg.ProgressInterval, seq, step)
	}
	s.scheduleAsync(s.cfg.ProgressInterval, seq, step)
}

// schedule runs fn after d. A zero delay runs fn inline (caller holds the
// lock); otherwise the callback re-takes the lock and checks seq.
func (s *Service) schedule(d time.Duration, seq uint64, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	s.scheduleAsync(d, seq, fn)
}

// scheduleAsync always defers fn to a timer, even at zero delay.
func (s *Service) scheduleAsync(d time.Duration, seq uint64, fn func()) {
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		s.dropTimerLocked(timer)
		if s.seq != seq {
			s.mu.Unlock()
			return
		}
		fn()
		s.mu.Unlock()
		s.flush()
	})
	s.timers = append(s.timers, timer)
}

// dropTimerLocked forgets a fired timer handle so long matches do not
// accumulate them. Order does not matter; stopTimersLocked cancels the rest.
func (s *Service) dropTimerLocked(timer *time.Timer) {
	for i, t := range s.timers {
		if t == timer {
			s.timers[i] = s.timers[len(s.timers)-1]
			s.timers = s.timers[:len(s.timers)-1]
			return
		}
	}
}

// stopTimersLocked cancels every outstanding timer handle.
func (s *Service) stopTimersLocked() {
	for _, timer := range s.timers {
		timer.Stop()
	}
	s.timers = nil
}

// emit buffers an event for publication after the lock is released.
func (s *Service) emit(event domain.Event) {
	s.pending = append(s.pending, event)
}

// flush publishes buffered events outside the lock. Handlers may call back
// into the engine safely.
func (s *Service) flush() {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, event := range events {
		s.events.Publish(event)
	}
}

// String implements fmt.Stringer for debug logging.
func (s *Service) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("match{phase=%s round=%d/%d turn=%d}", s.phase, s.round, s.totalRounds, s.turn)
}
