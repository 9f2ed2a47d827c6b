// Package progression owns everything that outlives a single match:
// accounts, XP and levels, coins, badges, the item shop and the rotating
// daily challenge.
package progression

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// XP formula constants. Winners earn a bigger base and a bigger capped
// per-round bonus than losers.
const (
	winBaseXP      = 50
	winPerRoundXP  = 2
	winRoundXPCap  = 40
	lossBaseXP     = 15
	lossPerRoundXP = 1
	lossRoundXPCap = 20

	// coinsPerXP converts match XP into coins.
	coinsPerXP = 5
)

// levelThreshold is the XP needed to advance from the given level.
func levelThreshold(level int) int {
	return level * 100
}

// Service implements account progression over an AccountRepository.
//
// Thread-safety: this implementation is thread-safe.
type Service struct {
	accounts  ports.AccountRepository
	events    ports.EventBus
	logger    *slog.Logger
	rng       *rand.Rand
	scheduler gocron.Scheduler

	mu sync.Mutex

	// now is the clock source, swappable in tests.
	now func() time.Time
}

// NewService creates a progression service.
func NewService(accounts ports.AccountRepository, events ports.EventBus, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		events:   events,
		logger:   logger.With(slog.String("service", "progression")),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// SetClock replaces the clock source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Register creates a new account. The username must be unused
// (case-insensitive) and non-empty after trimming.
func (s *Service) Register(username, password, avatar string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		Avatar:   avatar,
		Level:    1,
		Stats: domain.UserStats{
			GenreCounts: make(map[domain.Genre]int),
		},
		DailyChallenge: s.rollChallenge(),
		CurrentThemeID: Themes[0].ID,
	}

	if err := s.accounts.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", slog.String("username", username))
	return user, nil
}

// Login authenticates a user by username and password.
// The daily challenge is lazily rotated when its date is stale.
func (s *Service) Login(username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.accounts.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}

	if rotated := s.rotateIfStale(user); rotated {
		if err := s.accounts.Update(user); err != nil {
			s.logger.Warn("failed to persist rotated challenge", slog.String("error", err.Error()))
		}
	}

	return user, nil
}

// User returns the current persisted record for the ID.
func (s *Service) User(id string) (*domain.User, error) {
	return s.accounts.FindByID(id)
}

// Leaderboard returns all users sorted by level then XP, highest first.
func (s *Service) Leaderboard() ([]*domain.User, error) {
	users, err := s.accounts.All()
	if err != nil {
		return nil, err
	}
	// Insertion sort keeps it simple for the small account counts here.
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && ranksAbove(users[j], users[j-1]); j-- {
			users[j], users[j-1] = users[j-1], users[j]
		}
	}
	return users, nil
}

func ranksAbove(a, b *domain.User) bool {
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.XP > b.XP
}

// UpdateTheme switches the user's active theme. The theme must exist and
// be unlocked at the user's level.
func (s *Service) UpdateTheme(userID, themeID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, err
	}

	var theme *domain.Theme
	for i := range Themes {
		if Themes[i].ID == themeID {
			theme = &Themes[i]
			break
		}
	}
	if theme == nil {
		return nil, domain.ErrThemeLocked
	}
	if user.Level < theme.MinLevel {
		return nil, domain.ErrThemeLocked
	}

	user.CurrentThemeID = theme.ID
	if err := s.accounts.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// PurchaseItem buys one shop item, decrementing coins and incrementing the
// matching inventory slot atomically on the stored record.
func (s *Service) PurchaseItem(userID, itemID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var item *domain.ShopItem
	for i := range ShopItems {
		if ShopItems[i].ID == itemID {
			item = &ShopItems[i]
			break
		}
	}
	if item == nil {
		return nil, domain.ErrUnknownItem
	}

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Coins < item.Price {
		return nil, domain.ErrInsufficientCoins
	}

	user.Coins -= item.Price
	switch item.Kind {
	case domain.ItemHint:
		user.Inventory.Hints++
	case domain.ItemSkip:
		user.Inventory.Skips++
	case domain.ItemLife:
		user.Inventory.Lives++
	}

	if err := s.accounts.Update(user); err != nil {
		return nil, err
	}

	s.logger.Info("item purchased",
		slog.String("user", user.Username),
		slog.String("item", item.ID))

	return user, nil
}

// ConsumeInventoryItem deducts one unit of the given kind from the user's
// persistent inventory. Used by the match engine when a power-up charge
// beyond the free base is spent; the deduction is best-effort and a missing
// unit is not an error.
func (s *Service) ConsumeInventoryItem(userID string, kind domain.ShopItemKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return
	}

	switch kind {
	case domain.ItemHint:
		if user.Inventory.Hints == 0 {
			return
		}
		user.Inventory.Hints--
	case domain.ItemSkip:
		if user.Inventory.Skips == 0 {
			return
		}
		user.Inventory.Skips--
	case domain.ItemLife:
		if user.Inventory.Lives == 0 {
			return
		}
		user.Inventory.Lives--
	}

	if err := s.accounts.Update(user); err != nil {
		s.logger.Debug("inventory deduction lost", slog.String("error", err.Error()))
	}
}

// UpdateAfterMatch applies a finished match to the account: XP, level-ups,
// coins, stats, badge unlocks and daily-challenge progress. Returns the
// rewards delta. Never called for guest slots.
func (s *Service) UpdateAfterMatch(
	userID string,
	won bool,
	score int,
	genre domain.Genre,
	roundsPlayed int,
	style domain.MatchStyle,
) (*domain.MatchRewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.accounts.FindByID(userID)
	if err != nil {
		return nil, err
	}

	s.rotateIfStale(user)

	xp := matchXP(won, roundsPlayed)
	coins := xp / coinsPerXP

	// Stats first: badge predicates read them.
	user.Stats.TotalMatches++
	if won {
		user.Stats.TotalWins++
	}
	if user.Stats.GenreCounts == nil {
		user.Stats.GenreCounts = make(map[domain.Genre]int)
	}
	user.Stats.GenreCounts[genre]++
	if style == domain.StyleSurvival && roundsPlayed > user.Stats.HighestRoundSurvival {
		user.Stats.HighestRoundSurvival = roundsPlayed
	}

	// Daily challenge progress by type.
	challengeXP, challengeCoins := s.advanceChallenge(user, won, score)
	xp += challengeXP
	coins += challengeCoins

	user.XP += xp
	leveled := false
	for user.XP >= levelThreshold(user.Level) {
		user.XP -= levelThreshold(user.Level)
		user.Level++
		leveled = true
	}

	user.Coins += coins
	user.Stats.TotalCoinsEarned += coins

	newBadges := s.unlockBadges(user)

	if err := s.accounts.Update(user); err != nil {
		return nil, err
	}

	rewards := &domain.MatchRewards{
		XPGained:    xp,
		CoinsGained: coins,
		LeveledUp:   leveled,
		NewBadges:   newBadges,
	}
	s.events.Publish(domain.NewRewardsAppliedEvent(*rewards))

	s.logger.Info("match rewards applied",
		slog.String("user", user.Username),
		slog.Int("xp", xp),
		slog.Int("coins", coins),
		slog.Bool("leveled_up", leveled))

	return rewards, nil
}

// matchXP computes the XP for one match.
func matchXP(won bool, rounds int) int {
	if won {
		return winBaseXP + min(winRoundXPCap, winPerRoundXP*rounds)
	}
	return lossBaseXP + min(lossRoundXPCap, lossPerRoundXP*rounds)
}

// advanceChallenge bumps the user's daily challenge and pays its reward
// exactly once on completion.
func (s *Service) advanceChallenge(user *domain.User, won bool, score int) (xp, coins int) {
	challenge := &user.DailyChallenge
	if challenge.Completed || challenge.Date == "" {
		return 0, 0
	}

	switch challenge.Type {
	case domain.ChallengePlay:
		challenge.Progress++
	case domain.ChallengeWin:
		if won {
			challenge.Progress++
		}
	case domain.ChallengeScore:
		if score > 0 {
			challenge.Progress += score
		}
	}

	if challenge.Progress >= challenge.Target {
		challenge.Progress = challenge.Target
		challenge.Completed = true
		return challenge.RewardXP, challenge.RewardCoins
	}
	return 0, 0
}

// unlockBadges evaluates the badge table and appends new unlocks.
func (s *Service) unlockBadges(user *domain.User) []string {
	var unlocked []string
	for _, badge := range Badges {
		if user.HasBadge(badge.ID) || !badge.Unlocked(user) {
			continue
		}
		user.Badges = append(user.Badges, badge.ID)
		unlocked = append(unlocked, badge.ID)
	}
	return unlocked
}

// rollChallenge picks a fresh challenge for today.
func (s *Service) rollChallenge() domain.DailyChallenge {
	template := challengeTemplates[s.rng.Intn(len(challengeTemplates))]
	return domain.DailyChallenge{
		Date:        s.now().Format("2006-01-02"),
		Description: template.description,
		Target:      template.target,
		Type:        template.ctype,
		RewardXP:    template.rewardXP,
		RewardCoins: template.rewardCoins,
	}
}

// rotateIfStale replaces the user's challenge when its date is not today.
// Returns whether a rotation happened. Caller holds the lock.
func (s *Service) rotateIfStale(user *domain.User) bool {
	today := s.now().Format("2006-01-02")
	if user.DailyChallenge.Date == today {
		return false
	}
	user.DailyChallenge = s.rollChallenge()
	s.events.Publish(domain.NewChallengeRotatedEvent(user.DailyChallenge))
	return true
}

// StartChallengeRotation schedules a daily midnight job that rotates every
// stored account's challenge. Call Shutdown to stop it.
func (s *Service) StartChallengeRotation() error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return domain.NewServiceError("ProgressionService", "StartChallengeRotation", "failed to create scheduler", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(s.rotateAll),
	)
	if err != nil {
		return domain.NewServiceError("ProgressionService", "StartChallengeRotation", "failed to schedule job", err)
	}

	scheduler.Start()

	s.mu.Lock()
	s.scheduler = scheduler
	s.mu.Unlock()

	return nil
}

// rotateAll refreshes the challenge of every stored account.
func (s *Service) rotateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.accounts.All()
	if err != nil {
		s.logger.Warn("challenge rotation skipped", slog.String("error", err.Error()))
		return
	}

	for _, user := range users {
		if !s.rotateIfStale(user) {
			continue
		}
		if err := s.accounts.Update(user); err != nil {
			s.logger.Warn("failed to persist rotated challenge",
				slog.String("user", user.Username),
				slog.String("error", err.Error()))
		}
	}

	s.logger.Info("daily challenges rotated", slog.Int("accounts", len(users)))
}

// Shutdown stops the challenge rotation scheduler if it is running.
func (s *Service) Shutdown() error {
	s.mu.Lock()
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if scheduler == nil {
		return nil
	}
	return scheduler.Shutdown()
}
