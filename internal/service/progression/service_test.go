package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/superquiz/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/logger"
	"github.com/tejashwikalptaru/superquiz/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *memory.AccountRepository, *eventbus.SyncEventBus) {
	t.Helper()
	repo := memory.NewAccountRepository()
	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() {
		_ = bus.Close()
	})
	svc := NewService(repo, bus, logger.NewTestLogger())
	svc.SetClock(func() time.Time {
		return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	})
	return svc, repo, bus
}

func register(t *testing.T, svc *Service) *domain.User {
	t.Helper()
	user, err := svc.Register("maria", "senha123", "🎤")
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)

	user := register(t, svc)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, "padrao", user.CurrentThemeID)
	assert.Equal(t, "2025-06-01", user.DailyChallenge.Date)

	logged, err := svc.Login("MARIA", "senha123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Login("maria", "errada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login("ninguem", "senha123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterRejectsEmptyAndDuplicate(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)

	_, err := svc.Register("  ", "x", "🎤")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	register(t, svc)
	_, err = svc.Register("Maria", "outra", "🎸")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUpdateAfterMatchWin(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, bus := newTestService(t)
	user := register(t, svc)

	var applied []domain.RewardsAppliedEvent
	bus.Subscribe(domain.EventRewardsApplied, func(e domain.Event) {
		applied = append(applied, e.(domain.RewardsAppliedEvent))
	})

	rewards, err := svc.UpdateAfterMatch(user.ID, true, 8, domain.GenreSertanejo, 10, domain.StyleRounds)
	require.NoError(t, err)

	// Win: 50 base + 2*10 rounds = 70, before any challenge bonus.
	assert.GreaterOrEqual(t, rewards.XPGained, 70)
	assert.GreaterOrEqual(t, rewards.CoinsGained, 70/5)
	assert.Len(t, applied, 1)

	stored, err := svc.User(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stats.TotalMatches)
	assert.Equal(t, 1, stored.Stats.TotalWins)
	assert.Equal(t, 1, stored.Stats.GenreCounts[domain.GenreSertanejo])
	assert.Contains(t, stored.Badges, "primeira_vitoria")
}

func TestUpdateAfterMatchLossCapsRoundBonus(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	// Neutralize the daily challenge so the XP is exactly the formula.
	stored, err := svc.User(user.ID)
	require.NoError(t, err)
	stored.DailyChallenge.Completed = true
	require.NoError(t, svc.accounts.Update(stored))

	rewards, err := svc.UpdateAfterMatch(user.ID, false, 0, domain.GenrePagode, 50, domain.StyleRounds)
	require.NoError(t, err)

	// Loss: 15 base + min(20, 50) = 35.
	assert.Equal(t, 35, rewards.XPGained)
	assert.Equal(t, 7, rewards.CoinsGained)
	assert.False(t, rewards.LeveledUp)
}

func TestUpdateAfterMatchLevelsUp(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	stored, err := svc.User(user.ID)
	require.NoError(t, err)
	stored.XP = 95
	stored.DailyChallenge.Completed = true
	require.NoError(t, svc.accounts.Update(stored))

	rewards, err := svc.UpdateAfterMatch(user.ID, true, 3, domain.GenrePopBR, 5, domain.StyleRounds)
	require.NoError(t, err)
	assert.True(t, rewards.LeveledUp)

	stored, err = svc.User(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Level)
	// 95 + 60 = 155; level 1 threshold is 100, so 55 carries over.
	assert.Equal(t, 55, stored.XP)
}

func TestUpdateAfterMatchSurvivalRecord(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	_, err := svc.UpdateAfterMatch(user.ID, true, 0, domain.GenreAll, 12, domain.StyleSurvival)
	require.NoError(t, err)

	stored, err := svc.User(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Stats.HighestRoundSurvival)

	// A shorter run never lowers the record.
	_, err = svc.UpdateAfterMatch(user.ID, false, 0, domain.GenreAll, 4, domain.StyleSurvival)
	require.NoError(t, err)

	stored, err = svc.User(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Stats.HighestRoundSurvival)
}

func TestDailyChallengeProgressAndReward(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	// Pin a known challenge.
	stored, err := svc.User(user.ID)
	require.NoError(t, err)
	stored.DailyChallenge = domain.DailyChallenge{
		Date:        "2025-06-01",
		Description: "Vença 1 partida",
		Target:      1,
		Type:        domain.ChallengeWin,
		RewardXP:    40,
		RewardCoins: 20,
	}
	require.NoError(t, svc.accounts.Update(stored))

	// A loss makes no progress.
	_, err = svc.UpdateAfterMatch(user.ID, false, 2, domain.GenrePagode, 5, domain.StyleRounds)
	require.NoError(t, err)
	stored, _ = svc.User(user.ID)
	assert.Equal(t, 0, stored.DailyChallenge.Progress)
	assert.False(t, stored.DailyChallenge.Completed)

	// The win completes it and pays the bonus once.
	rewards, err := svc.UpdateAfterMatch(user.ID, true, 5, domain.GenrePagode, 5, domain.StyleRounds)
	require.NoError(t, err)
	assert.Equal(t, 50+2*5+40, rewards.XPGained)

	stored, _ = svc.User(user.ID)
	assert.True(t, stored.DailyChallenge.Completed)

	// Completed challenges pay nothing further.
	rewards, err = svc.UpdateAfterMatch(user.ID, true, 5, domain.GenrePagode, 5, domain.StyleRounds)
	require.NoError(t, err)
	assert.Equal(t, 50+2*5, rewards.XPGained)
}

func TestChallengeRotatesOnStaleDate(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, bus := newTestService(t)
	user := register(t, svc)

	var rotated int
	bus.Subscribe(domain.EventChallengeRotated, func(domain.Event) {
		rotated++
	})

	// Next day: login rotates the challenge lazily.
	svc.SetClock(func() time.Time {
		return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	})

	logged, err := svc.Login("maria", "senha123")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", logged.DailyChallenge.Date)
	assert.Equal(t, 0, logged.DailyChallenge.Progress)
	assert.Equal(t, 1, rotated)

	_ = user
}

func TestUpdateTheme(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	// Locked above the user's level.
	_, err := svc.UpdateTheme(user.ID, "dourado")
	assert.ErrorIs(t, err, domain.ErrThemeLocked)

	// Unknown themes are rejected the same way.
	_, err = svc.UpdateTheme(user.ID, "inexistente")
	assert.ErrorIs(t, err, domain.ErrThemeLocked)

	updated, err := svc.UpdateTheme(user.ID, "padrao")
	require.NoError(t, err)
	assert.Equal(t, "padrao", updated.CurrentThemeID)
}

func TestPurchaseItem(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	_, err := svc.PurchaseItem(user.ID, "hint")
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

	stored, _ := svc.User(user.ID)
	stored.Coins = 120
	require.NoError(t, svc.accounts.Update(stored))

	updated, err := svc.PurchaseItem(user.ID, "hint")
	require.NoError(t, err)
	assert.Equal(t, 70, updated.Coins)
	assert.Equal(t, 1, updated.Inventory.Hints)

	_, err = svc.PurchaseItem(user.ID, "foguete")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestConsumeInventoryItem(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	stored, _ := svc.User(user.ID)
	stored.Inventory.Skips = 2
	require.NoError(t, svc.accounts.Update(stored))

	svc.ConsumeInventoryItem(user.ID, domain.ItemSkip)
	svc.ConsumeInventoryItem(user.ID, domain.ItemSkip)
	// Draining past zero is a silent no-op.
	svc.ConsumeInventoryItem(user.ID, domain.ItemSkip)

	stored, _ = svc.User(user.ID)
	assert.Equal(t, 0, stored.Inventory.Skips)
}

func TestLeaderboardOrdering(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)
	svc, repo, _ := newTestService(t)

	for _, row := range []struct {
		name  string
		level int
		xp    int
	}{
		{"bronze", 1, 10},
		{"ouro", 5, 20},
		{"prata", 5, 5},
	} {
		user, err := svc.Register(row.name, "senha", "🎵")
		require.NoError(t, err)
		user.Level = row.level
		user.XP = row.xp
		require.NoError(t, repo.Update(user))
	}

	board, err := svc.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "ouro", board[0].Username)
	assert.Equal(t, "prata", board[1].Username)
	assert.Equal(t, "bronze", board[2].Username)
}
