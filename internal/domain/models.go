// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the Super Quiz Musical game.
package domain

import (
	"strings"
	"time"
)

// PreviewLimit is the maximum playable length of a song preview.
// Catalog previews are 30-second clips; playback is force-stopped at this mark.
const PreviewLimit = 30 * time.Second

// Genre identifies a music category in the catalog taxonomy.
type Genre string

// Catalog genres. GenreAll is a selector, never a tag on a track.
const (
	GenreSertanejo Genre = "sertanejo"
	GenrePagode    Genre = "pagode"
	GenrePopBR     Genre = "pop_br"
	GenreGospel    Genre = "gospel"
	GenrePopIntl   Genre = "pop_intl"
	GenreRockMPB   Genre = "rock_mpb"
	GenreFlashback Genre = "flashback"
	GenreTikTok    Genre = "tiktok"
	GenreAll       Genre = "all"
)

// International reports whether the genre belongs to the international
// super-category. Used as the widest distractor fallback tier.
func (g Genre) International() bool {
	return g == GenrePopIntl
}

// Gender tags the performer of a track or artist.
type Gender string

// Performer gender tags. GenderGroup covers bands and duos.
const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderGroup  Gender = "G"
)

// Artist is a roster entry used for pool seeding and distractor search.
type Artist struct {
	// Name is the artist's display name as known by the catalog
	Name string

	// Category is the genre the artist is filed under
	Category Genre

	// Gender is the performer gender tag
	Gender Gender
}

// Track is an immutable catalog item with a playable preview.
type Track struct {
	// Title is the song title
	Title string

	// Artist is the performing artist name
	Artist string

	// PreviewURL is the URL of the 30-second preview clip
	PreviewURL string

	// CoverURL is the album cover art URL
	CoverURL string

	// Category is the genre tag inherited from the roster artist
	Category Genre

	// Gender is the performer gender tag
	Gender Gender
}

// QuestionMode selects what a round's question asks for.
type QuestionMode int

const (
	// AskArtist asks which artist performs the playing track
	AskArtist QuestionMode = iota

	// AskTitle asks for the playing track's title
	AskTitle
)

// String returns a human-readable representation of the question mode.
func (m QuestionMode) String() string {
	switch m {
	case AskArtist:
		return "artist"
	case AskTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Question is the per-round multiple-choice question. It is recreated every
// round and never reused.
type Question struct {
	// Track is the song the question is about
	Track Track

	// Mode is what the question asks for (artist or title)
	Mode QuestionMode

	// Correct is the correct answer string
	Correct string

	// Options holds the answer choices in display order: the correct answer
	// plus up to 3 distractors, shuffled. Fewer than 4 entries only under
	// catalog starvation.
	Options []string

	// Disabled marks hint-eliminated distractors. Never contains Correct.
	Disabled map[string]bool
}

// WrongOptions returns the distractor options, excluding the correct answer.
func (q Question) WrongOptions() []string {
	wrong := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o != q.Correct {
			wrong = append(wrong, o)
		}
	}
	return wrong
}

// IsCorrect reports whether the given option matches the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Correct
}

// GameMode selects who occupies the second contestant slot.
type GameMode string

const (
	// ModeSolo pits the human against the bot
	ModeSolo GameMode = "1p"

	// ModeDuo is two humans sharing the device
	ModeDuo GameMode = "2p"
)

// MatchStyle selects the win condition.
type MatchStyle string

const (
	// StyleRounds ends the match after a fixed round count; higher score wins
	StyleRounds MatchStyle = "rounds"

	// StyleSurvival disables scoring; the last contestant with lives wins
	StyleSurvival MatchStyle = "survival"
)

// Difficulty selects the penalty and reveal rules.
type Difficulty string

const (
	// DifficultyNormal has no wrong-answer penalty and free preview listens
	DifficultyNormal Difficulty = "normal"

	// DifficultyHard deducts points on wrong answers (rounds style) and
	// limits preview listens to fixed seek windows
	DifficultyHard Difficulty = "hard"
)

// SurvivalRoundTarget is the effectively unbounded round target used when
// the match style is survival.
const SurvivalRoundTarget = 999

// Contestant is the mutable per-match record of one player slot.
// It is initialized at match setup and discarded at match end; only the
// aggregate result flows into account progression.
type Contestant struct {
	// Name is the display name
	Name string

	// Avatar is the emoji avatar tag
	Avatar string

	// Score is the current score. Signed: hard difficulty penalties may
	// push it negative.
	Score int

	// Lives is the remaining lives (survival style)
	Lives int

	// Skips, Hints, Passes are the remaining power-up charges
	Skips  int
	Hints  int
	Passes int

	// Streak is the current consecutive-correct-answer count
	Streak int

	// IsBot marks the slot as AI-controlled
	IsBot bool

	// IsGuest marks the slot as not backed by an account
	IsGuest bool
}

// MatchPhase is the coarse state of the match state machine.
type MatchPhase int

const (
	// PhaseSetup means no match is running
	PhaseSetup MatchPhase = iota

	// PhasePlaying means a round is live and accepting actions
	PhasePlaying

	// PhaseLocked means the round's answer is revealed; no further action
	// on this round is accepted
	PhaseLocked

	// PhaseFinished means the match has a result
	PhaseFinished
)

// String returns a human-readable representation of the match phase.
func (p MatchPhase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseLocked:
		return "locked"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome labels the trigger that locked a round.
type Outcome string

// Round-locking outcomes. Skips and hints do not lock a round and have no outcome.
const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeTimeout Outcome = "timeout"
	OutcomePassed  Outcome = "passed"
)

// DrawSlot is the winner index marking a drawn match.
const DrawSlot = -1

// MatchResult is the terminal summary of a finished match.
type MatchResult struct {
	// Winner is the winning contestant slot (0 or 1), or DrawSlot on a draw
	Winner int

	// Contestants holds the final contestant records
	Contestants [2]Contestant

	// RoundsPlayed is the number of completed rounds
	RoundsPlayed int

	// Style, Difficulty and Genre echo the match configuration
	Style      MatchStyle
	Difficulty Difficulty
	Genre      Genre
}

// IsDraw reports whether the match ended without a winner.
func (r MatchResult) IsDraw() bool {
	return r.Winner == DrawSlot
}

// HistoryRecord is one entry of the persisted session history
// (max 5, most-recent-first).
type HistoryRecord struct {
	WinnerName   string `json:"winnerName"`
	WinnerAvatar string `json:"winnerAvatar"`
	Score1       int    `json:"score1"`
	Score2       int    `json:"score2"`
	Date         string `json:"date"`
}

// Inventory is the persistent power-up stock of an account.
type Inventory struct {
	Hints int `json:"hints"`
	Skips int `json:"skips"`
	Lives int `json:"lives"`
}

// ChallengeType selects what a daily challenge counts.
type ChallengeType string

// Daily challenge types.
const (
	ChallengePlay  ChallengeType = "play"
	ChallengeWin   ChallengeType = "win"
	ChallengeScore ChallengeType = "score"
)

// DailyChallenge is the rotating per-day account challenge.
type DailyChallenge struct {
	// Date is the challenge day in YYYY-MM-DD form
	Date string `json:"date"`

	// Description is the user-facing challenge text
	Description string `json:"description"`

	// Target is the count required to complete the challenge
	Target int `json:"target"`

	// Progress is the count accumulated so far today
	Progress int `json:"progress"`

	// Completed is set once Progress reaches Target and rewards are paid
	Completed bool `json:"completed"`

	// RewardXP and RewardCoins are paid once on completion
	RewardXP    int `json:"rewardXp"`
	RewardCoins int `json:"rewardCoins"`

	// Type selects what the challenge counts
	Type ChallengeType `json:"type"`
}

// UserStats aggregates lifetime account statistics.
type UserStats struct {
	TotalMatches         int           `json:"totalMatches"`
	TotalWins            int           `json:"totalWins"`
	GenreCounts          map[Genre]int `json:"genreCounts"`
	HighestRoundSurvival int           `json:"highestRoundSurvival"`
	TotalCoinsEarned     int           `json:"totalCoinsEarned"`
}

// User is a persisted account record.
//
// Password is stored as given, not hashed. This matches the account-store
// schema the game inherited and is a known weakness of that contract.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`

	XP    int `json:"xp"`
	Level int `json:"level"`
	Coins int `json:"coins"`

	Inventory      Inventory      `json:"inventory"`
	Badges         []string       `json:"badges"`
	DailyChallenge DailyChallenge `json:"dailyChallenge"`
	Stats          UserStats      `json:"stats"`

	CurrentThemeID string `json:"currentThemeId,omitempty"`
}

// HasBadge reports whether the user has unlocked the given badge.
func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// MatchRewards is the progression delta computed for a finished match.
type MatchRewards struct {
	XPGained    int
	CoinsGained int
	LeveledUp   bool
	NewBadges   []string
}

// Theme is an unlockable UI theme.
type Theme struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MinLevel int    `json:"minLevel"`
	Emoji    string `json:"emoji"`
}

// ShopItemKind is the fixed set of purchasable power-up types.
// Enum-indexed rather than string-keyed so item handling is exhaustive.
type ShopItemKind int

const (
	// ItemHint adds one persistent hint charge to the inventory
	ItemHint ShopItemKind = iota

	// ItemSkip adds one persistent skip charge
	ItemSkip

	// ItemLife adds one persistent extra life for survival matches
	ItemLife
)

// String returns the inventory key for the item kind.
func (k ShopItemKind) String() string {
	switch k {
	case ItemHint:
		return "hint"
	case ItemSkip:
		return "skip"
	case ItemLife:
		return "life"
	default:
		return "unknown"
	}
}

// ShopItem is a purchasable inventory item.
type ShopItem struct {
	ID          string       `json:"id"`
	Kind        ShopItemKind `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Price       int          `json:"price"`
}

// PreviewHandle is an opaque identifier for a preview loaded into the
// audio engine.
type PreviewHandle int64

// InvalidPreviewHandle represents an invalid or uninitialized preview handle.
const InvalidPreviewHandle PreviewHandle = 0

// TitleKey normalizes a track title for case-insensitive deduplication.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
