package match

import "time"

// Config holds the timing knobs of the match engine. Tests zero the reveal
// delays to make transitions synchronous.
type Config struct {
	// Countdown is the per-turn answer window. Zero disables the server
	// countdown entirely.
	Countdown time.Duration

	// Reveal delays: how long the locked answer stays on screen before the
	// match advances. Zero advances inline.
	RevealAnswer  time.Duration
	RevealTimeout time.Duration
	RevealPass    time.Duration

	// TauntClear is how long a bot taunt stays before the clear event.
	TauntClear time.Duration

	// BotThink overrides the bot policy's think delay when positive.
	BotThink time.Duration

	// ProgressInterval is the preview progress sampling period. Zero
	// disables progress events.
	ProgressInterval time.Duration
}

// DefaultConfig returns the production timings.
func DefaultConfig() Config {
	return Config{
		Countdown:        15 * time.Second,
		RevealAnswer:     4 * time.Second,
		RevealTimeout:    3 * time.Second,
		RevealPass:       2 * time.Second,
		TauntClear:       3500 * time.Millisecond,
		ProgressInterval: time.Second,
	}
}
