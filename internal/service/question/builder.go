// Package question builds the per-round multiple-choice question for a
// playing track: a 50/50 pick between asking for the artist and asking for
// the title, with distractors drawn from progressively wider peer tiers.
package question

import (
	"log/slog"
	"math/rand"
	"strings"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
)

// Builder constructs questions over a fixed artist roster.
//
// Thread-safety: NOT thread-safe (the injected rand.Rand is unsynchronized).
// The match engine calls it under its own lock.
type Builder struct {
	roster []domain.Artist
	rng    *rand.Rand
	logger *slog.Logger
}

// NewBuilder creates a question builder. The rng is injected so tests can
// pin the mode pick and option placement.
func NewBuilder(roster []domain.Artist, rng *rand.Rand, logger *slog.Logger) *Builder {
	return &Builder{
		roster: roster,
		rng:    rng,
		logger: logger.With(slog.String("service", "question")),
	}
}

// Build creates the question for track. The pool is the current song pool;
// it supplies title distractors. Artist distractors come from the roster.
func (b *Builder) Build(pool []domain.Track, track domain.Track) (domain.Question, error) {
	question := domain.Question{
		Track:    track,
		Disabled: make(map[string]bool),
	}

	if b.rng.Intn(2) == 0 {
		question.Mode = domain.AskArtist
		question.Correct = track.Artist
		question.Options = b.shuffleOptions(track.Artist, b.artistDistractors(track))
	} else {
		question.Mode = domain.AskTitle
		question.Correct = track.Title
		question.Options = b.shuffleOptions(track.Title, b.titleDistractors(pool, track))
	}

	b.logger.Debug("question built",
		slog.String("mode", question.Mode.String()),
		slog.Int("options", len(question.Options)))

	return question, nil
}

// artistDistractors picks up to 3 peer artists. Tiers, widest last:
// same category and gender, same category, same international-vs-national
// super-category. The first tier holding at least 3 peers wins.
func (b *Builder) artistDistractors(track domain.Track) []string {
	exclude := strings.ToLower(track.Artist)

	peers := b.filterRoster(func(a domain.Artist) bool {
		return a.Category == track.Category && a.Gender == track.Gender
	}, exclude)
	if len(peers) < 3 {
		peers = b.filterRoster(func(a domain.Artist) bool {
			return a.Category == track.Category
		}, exclude)
	}
	if len(peers) < 3 {
		intl := track.Category.International()
		peers = b.filterRoster(func(a domain.Artist) bool {
			return a.Category.International() == intl
		}, exclude)
	}

	b.rng.Shuffle(len(peers), func(i, j int) {
		peers[i], peers[j] = peers[j], peers[i]
	})
	if len(peers) > 3 {
		peers = peers[:3]
	}
	return peers
}

// titleDistractors picks up to 3 other titles from the same category in the
// pool, deduplicated case-insensitively.
func (b *Builder) titleDistractors(pool []domain.Track, track domain.Track) []string {
	excludeKey := domain.TitleKey(track.Title)

	seen := make(map[string]bool)
	var titles []string
	for _, candidate := range pool {
		if candidate.Category != track.Category {
			continue
		}
		key := domain.TitleKey(candidate.Title)
		if key == excludeKey || seen[key] {
			continue
		}
		seen[key] = true
		titles = append(titles, candidate.Title)
	}

	b.rng.Shuffle(len(titles), func(i, j int) {
		titles[i], titles[j] = titles[j], titles[i]
	})
	if len(titles) > 3 {
		titles = titles[:3]
	}
	return titles
}

// filterRoster returns the names of roster artists matching keep, always
// excluding the correct artist case-insensitively.
func (b *Builder) filterRoster(keep func(domain.Artist) bool, exclude string) []string {
	var names []string
	for _, a := range b.roster {
		if strings.ToLower(a.Name) == exclude {
			continue
		}
		if keep(a) {
			names = append(names, a.Name)
		}
	}
	return names
}

// shuffleOptions merges the correct answer into the distractors with a
// uniform placement.
func (b *Builder) shuffleOptions(correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
