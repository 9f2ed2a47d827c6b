// Package bot decides how the AI contestant plays: when it answers, how
// often it gets the answer right, and what it says while doing it. The
// match engine owns the timers; this policy only makes the picks.
package bot

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

const (
	// thinkDelayMin..thinkDelayMax bound the simulated thinking time.
	thinkDelayMin = 2500 * time.Millisecond
	thinkDelayMax = 4500 * time.Millisecond

	// Answer accuracy per difficulty.
	accuracyNormal = 0.6
	accuracyHard   = 0.8

	// tauntChance is the per-human-turn probability of a taunt.
	tauntChance = 0.2

	// TauntClearDelay is how long a taunt stays on screen.
	TauntClearDelay = 3500 * time.Millisecond
)

// phrases maps each taunt kind to its pt-BR phrase pool.
var phrases = map[domain.TauntKind][]string{
	domain.TauntCorrect: {
		"Sabia!",
		"Fácil demais.",
		"Sou uma máquina!",
		"Bip Bop Acerto.",
		"Calculado.",
		"Sou invencível!",
	},
	domain.TauntWrong: {
		"Foi lag...",
		"Música ruim.",
		"Quem ouve isso?",
		"Bug no sistema.",
		"Recalculando...",
		"Essa não valeu.",
	},
	domain.TauntIdle: {
		"Sua vez, humano.",
		"Vai errar...",
		"Quero ver agora.",
		"Tic tac...",
		"Não me decepcione.",
	},
}

// Policy is the bot's decision maker.
//
// Thread-safety: NOT thread-safe (unsynchronized rand.Rand); the match
// engine calls it under its own lock.
type Policy struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// NewPolicy creates a bot policy. The rng is injected so tests can pin the
// bot's picks.
func NewPolicy(rng *rand.Rand, logger *slog.Logger) *Policy {
	return &Policy{
		rng:    rng,
		logger: logger.With(slog.String("service", "bot")),
	}
}

// ThinkDelay returns the simulated thinking time before the bot answers.
func (p *Policy) ThinkDelay() time.Duration {
	spread := thinkDelayMax - thinkDelayMin
	return thinkDelayMin + time.Duration(p.rng.Int63n(int64(spread)))
}

// ChooseAnswer picks the bot's answer for the question. The bot hits the
// correct option with the difficulty's accuracy and otherwise picks a wrong
// option uniformly.
func (p *Policy) ChooseAnswer(question domain.Question, difficulty domain.Difficulty) string {
	accuracy := accuracyNormal
	if difficulty == domain.DifficultyHard {
		accuracy = accuracyHard
	}

	if p.rng.Float64() < accuracy {
		return question.Correct
	}

	wrong := question.WrongOptions()
	if len(wrong) == 0 {
		return question.Correct
	}
	return wrong[p.rng.Intn(len(wrong))]
}

// ShouldTaunt rolls the per-human-turn taunt chance.
func (p *Policy) ShouldTaunt() bool {
	return p.rng.Float64() < tauntChance
}

// Taunt picks a phrase of the given kind.
func (p *Policy) Taunt(kind domain.TauntKind) string {
	pool := phrases[kind]
	if len(pool) == 0 {
		return ""
	}
	message := pool[p.rng.Intn(len(pool))]

	p.logger.Debug("taunt picked",
		slog.String("kind", string(kind)),
		slog.String("message", message))

	return message
}
