// Package domain defines events for the event-driven architecture.
// Every engine state transition is announced on the event bus so the
// presentation layer can render without reaching into service internals.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Match lifecycle events
	EventMatchStarted   EventType = "match.started"
	EventRoundPrepared  EventType = "round.prepared"
	EventAnswerResolved EventType = "round.resolved"
	EventTurnChanged    EventType = "turn.changed"
	EventCountdownTick  EventType = "countdown.tick"
	EventMatchFinished  EventType = "match.finished"
	EventMatchReset     EventType = "match.reset"

	// Power-up events
	EventSongSkipped EventType = "powerup.skip"
	EventSongPassed  EventType = "powerup.pass"
	EventHintUsed    EventType = "powerup.hint"
	EventStreakBonus EventType = "streak.bonus"

	// Preview playback events
	EventPreviewStarted  EventType = "preview.started"
	EventPreviewProgress EventType = "preview.progress"
	EventPreviewStopped  EventType = "preview.stopped"

	// Bot flavor events
	EventBotTaunt        EventType = "bot.taunt"
	EventBotTauntCleared EventType = "bot.taunt_cleared"

	// Pool building events
	EventPoolProgress EventType = "pool.progress"

	// Progression events
	EventRewardsApplied   EventType = "rewards.applied"
	EventChallengeRotated EventType = "challenge.rotated"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// MatchStartedEvent is published when a match begins.
type MatchStartedEvent struct {
	baseEvent
	Mode        GameMode
	Style       MatchStyle
	Difficulty  Difficulty
	Genre       Genre
	TotalRounds int
	FirstTurn   int
}

// Type returns the event type.
func (e MatchStartedEvent) Type() EventType { return EventMatchStarted }

// NewMatchStartedEvent creates a new MatchStartedEvent.
func NewMatchStartedEvent(mode GameMode, style MatchStyle, difficulty Difficulty, genre Genre, totalRounds, firstTurn int) MatchStartedEvent {
	return MatchStartedEvent{
		baseEvent:   newBaseEvent(),
		Mode:        mode,
		Style:       style,
		Difficulty:  difficulty,
		Genre:       genre,
		TotalRounds: totalRounds,
		FirstTurn:   firstTurn,
	}
}

// RoundPreparedEvent is published when a new question is live.
type RoundPreparedEvent struct {
	baseEvent
	Round    int
	Turn     int
	Question Question
}

// Type returns the event type.
func (e RoundPreparedEvent) Type() EventType { return EventRoundPrepared }

// NewRoundPreparedEvent creates a new RoundPreparedEvent.
func NewRoundPreparedEvent(round, turn int, question Question) RoundPreparedEvent {
	return RoundPreparedEvent{baseEvent: newBaseEvent(), Round: round, Turn: turn, Question: question}
}

// AnswerResolvedEvent is published when a round locks via answer or timeout.
type AnswerResolvedEvent struct {
	baseEvent
	Round        int
	Turn         int
	Outcome      Outcome
	Selected     string // Empty on timeout
	Correct      string
	PointsDelta  int
	DoublePoints bool
}

// Type returns the event type.
func (e AnswerResolvedEvent) Type() EventType { return EventAnswerResolved }

// NewAnswerResolvedEvent creates a new AnswerResolvedEvent.
func NewAnswerResolvedEvent(round, turn int, outcome Outcome, selected, correct string, delta int, double bool) AnswerResolvedEvent {
	return AnswerResolvedEvent{
		baseEvent:    newBaseEvent(),
		Round:        round,
		Turn:         turn,
		Outcome:      outcome,
		Selected:     selected,
		Correct:      correct,
		PointsDelta:  delta,
		DoublePoints: double,
	}
}

// TurnChangedEvent is published when the active contestant slot flips.
type TurnChangedEvent struct {
	baseEvent
	Round int
	Turn  int
}

// Type returns the event type.
func (e TurnChangedEvent) Type() EventType { return EventTurnChanged }

// NewTurnChangedEvent creates a new TurnChangedEvent.
func NewTurnChangedEvent(round, turn int) TurnChangedEvent {
	return TurnChangedEvent{baseEvent: newBaseEvent(), Round: round, Turn: turn}
}

// CountdownTickEvent is published each second while a human turn's
// answer countdown runs.
type CountdownTickEvent struct {
	baseEvent
	Remaining time.Duration
}

// Type returns the event type.
func (e CountdownTickEvent) Type() EventType { return EventCountdownTick }

// NewCountdownTickEvent creates a new CountdownTickEvent.
func NewCountdownTickEvent(remaining time.Duration) CountdownTickEvent {
	return CountdownTickEvent{baseEvent: newBaseEvent(), Remaining: remaining}
}

// MatchFinishedEvent is published exactly once when the match reaches its
// terminal state.
type MatchFinishedEvent struct {
	baseEvent
	Result MatchResult
}

// Type returns the event type.
func (e MatchFinishedEvent) Type() EventType { return EventMatchFinished }

// NewMatchFinishedEvent creates a new MatchFinishedEvent.
func NewMatchFinishedEvent(result MatchResult) MatchFinishedEvent {
	return MatchFinishedEvent{baseEvent: newBaseEvent(), Result: result}
}

// MatchResetEvent is published when a match is abandoned or cleared.
type MatchResetEvent struct {
	baseEvent
}

// Type returns the event type.
func (e MatchResetEvent) Type() EventType { return EventMatchReset }

// NewMatchResetEvent creates a new MatchResetEvent.
func NewMatchResetEvent() MatchResetEvent {
	return MatchResetEvent{baseEvent: newBaseEvent()}
}

// SongSkippedEvent is published when a skip swaps the current song out.
// The round stays live with a fresh question; no turn change.
type SongSkippedEvent struct {
	baseEvent
	Round int
	Turn  int
}

// Type returns the event type.
func (e SongSkippedEvent) Type() EventType { return EventSongSkipped }

// NewSongSkippedEvent creates a new SongSkippedEvent.
func NewSongSkippedEvent(round, turn int) SongSkippedEvent {
	return SongSkippedEvent{baseEvent: newBaseEvent(), Round: round, Turn: turn}
}

// SongPassedEvent is published when a pass locks the round and removes the
// current song from the pool.
type SongPassedEvent struct {
	baseEvent
	Round    int
	Turn     int
	PoolSize int
}

// Type returns the event type.
func (e SongPassedEvent) Type() EventType { return EventSongPassed }

// NewSongPassedEvent creates a new SongPassedEvent.
func NewSongPassedEvent(round, turn, poolSize int) SongPassedEvent {
	return SongPassedEvent{baseEvent: newBaseEvent(), Round: round, Turn: turn, PoolSize: poolSize}
}

// HintUsedEvent is published when a hint eliminates two wrong options.
type HintUsedEvent struct {
	baseEvent
	Round    int
	Turn     int
	Disabled []string
}

// Type returns the event type.
func (e HintUsedEvent) Type() EventType { return EventHintUsed }

// NewHintUsedEvent creates a new HintUsedEvent.
func NewHintUsedEvent(round, turn int, disabled []string) HintUsedEvent {
	return HintUsedEvent{baseEvent: newBaseEvent(), Round: round, Turn: turn, Disabled: disabled}
}

// StreakBonusEvent is published when a contestant's streak hits the bonus mark.
type StreakBonusEvent struct {
	baseEvent
	Turn int

	// BonusPoint is true when the bonus is +1 point; false when it is a
	// temporary +1 skip charge.
	BonusPoint bool
}

// Type returns the event type.
func (e StreakBonusEvent) Type() EventType { return EventStreakBonus }

// NewStreakBonusEvent creates a new StreakBonusEvent.
func NewStreakBonusEvent(turn int, bonusPoint bool) StreakBonusEvent {
	return StreakBonusEvent{baseEvent: newBaseEvent(), Turn: turn, BonusPoint: bonusPoint}
}

// PreviewStartedEvent is published when preview playback begins.
type PreviewStartedEvent struct {
	baseEvent
	Offset time.Duration
	Limit  time.Duration
}

// Type returns the event type.
func (e PreviewStartedEvent) Type() EventType { return EventPreviewStarted }

// NewPreviewStartedEvent creates a new PreviewStartedEvent.
func NewPreviewStartedEvent(offset, limit time.Duration) PreviewStartedEvent {
	return PreviewStartedEvent{baseEvent: newBaseEvent(), Offset: offset, Limit: limit}
}

// PreviewProgressEvent is published periodically during preview playback.
type PreviewProgressEvent struct {
	baseEvent
	Elapsed time.Duration
	Limit   time.Duration
}

// Type returns the event type.
func (e PreviewProgressEvent) Type() EventType { return EventPreviewProgress }

// NewPreviewProgressEvent creates a new PreviewProgressEvent.
func NewPreviewProgressEvent(elapsed, limit time.Duration) PreviewProgressEvent {
	return PreviewProgressEvent{baseEvent: newBaseEvent(), Elapsed: elapsed, Limit: limit}
}

// PreviewStoppedEvent is published when preview playback stops, whether by
// user action, round lock, or the preview limit.
type PreviewStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e PreviewStoppedEvent) Type() EventType { return EventPreviewStopped }

// NewPreviewStoppedEvent creates a new PreviewStoppedEvent.
func NewPreviewStoppedEvent() PreviewStoppedEvent {
	return PreviewStoppedEvent{baseEvent: newBaseEvent()}
}

// TauntKind labels the flavor of a bot message.
type TauntKind string

// Bot message kinds.
const (
	TauntIdle    TauntKind = "taunt"
	TauntCorrect TauntKind = "correct"
	TauntWrong   TauntKind = "wrong"
)

// BotTauntEvent is a cosmetic bot flavor message. It has no state effect
// and auto-clears shortly after.
type BotTauntEvent struct {
	baseEvent
	Kind    TauntKind
	Message string
}

// Type returns the event type.
func (e BotTauntEvent) Type() EventType { return EventBotTaunt }

// NewBotTauntEvent creates a new BotTauntEvent.
func NewBotTauntEvent(kind TauntKind, message string) BotTauntEvent {
	return BotTauntEvent{baseEvent: newBaseEvent(), Kind: kind, Message: message}
}

// BotTauntClearedEvent clears the currently displayed bot message.
type BotTauntClearedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e BotTauntClearedEvent) Type() EventType { return EventBotTauntCleared }

// NewBotTauntClearedEvent creates a new BotTauntClearedEvent.
func NewBotTauntClearedEvent() BotTauntClearedEvent {
	return BotTauntClearedEvent{baseEvent: newBaseEvent()}
}

// PoolProgressEvent is published while the song pool is being built.
type PoolProgressEvent struct {
	baseEvent
	Artist  string // Artist currently being queried
	Fetched int    // Unique tracks collected so far
	Done    int    // Artists queried so far
	Total   int    // Artists planned for this pass
}

// Type returns the event type.
func (e PoolProgressEvent) Type() EventType { return EventPoolProgress }

// NewPoolProgressEvent creates a new PoolProgressEvent.
func NewPoolProgressEvent(artist string, fetched, done, total int) PoolProgressEvent {
	return PoolProgressEvent{baseEvent: newBaseEvent(), Artist: artist, Fetched: fetched, Done: done, Total: total}
}

// RewardsAppliedEvent is published after progression ran for a finished match.
type RewardsAppliedEvent struct {
	baseEvent
	Rewards MatchRewards
}

// Type returns the event type.
func (e RewardsAppliedEvent) Type() EventType { return EventRewardsApplied }

// NewRewardsAppliedEvent creates a new RewardsAppliedEvent.
func NewRewardsAppliedEvent(rewards MatchRewards) RewardsAppliedEvent {
	return RewardsAppliedEvent{baseEvent: newBaseEvent(), Rewards: rewards}
}

// ChallengeRotatedEvent is published when the daily challenge rolls over.
type ChallengeRotatedEvent struct {
	baseEvent
	Challenge DailyChallenge
}

// Type returns the event type.
func (e ChallengeRotatedEvent) Type() EventType { return EventChallengeRotated }

// NewChallengeRotatedEvent creates a new ChallengeRotatedEvent.
func NewChallengeRotatedEvent(challenge DailyChallenge) ChallengeRotatedEvent {
	return ChallengeRotatedEvent{baseEvent: newBaseEvent(), Challenge: challenge}
}
