package progression

import "github.com/tejashwikalptaru/superquiz/internal/domain"

// Themes is the fixed unlockable theme table, ordered by unlock level.
var Themes = []domain.Theme{
	{ID: "padrao", Name: "Padrão", MinLevel: 1, Emoji: "🎵"},
	{ID: "neon", Name: "Neon", MinLevel: 2, Emoji: "🌃"},
	{ID: "retro", Name: "Retrô", MinLevel: 3, Emoji: "📼"},
	{ID: "praia", Name: "Praia", MinLevel: 5, Emoji: "🏖️"},
	{ID: "festa", Name: "Festa Junina", MinLevel: 7, Emoji: "🎪"},
	{ID: "dourado", Name: "Dourado", MinLevel: 10, Emoji: "👑"},
}

// ShopItems is the fixed shop inventory.
var ShopItems = []domain.ShopItem{
	{
		ID:          "hint",
		Kind:        domain.ItemHint,
		Name:        "Dica Extra",
		Description: "Elimina 2 opções erradas",
		Icon:        "💡",
		Price:       50,
	},
	{
		ID:          "skip",
		Kind:        domain.ItemSkip,
		Name:        "Pular Música",
		Description: "Troca a música sem perder a vez",
		Icon:        "⏭️",
		Price:       75,
	},
	{
		ID:          "life",
		Kind:        domain.ItemLife,
		Name:        "Vida Extra",
		Description: "Uma vida a mais no modo sobrevivência",
		Icon:        "❤️",
		Price:       100,
	},
}

// Badge is one unlockable achievement with its unlock predicate.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    func(user *domain.User) bool
}

// Badges is the fixed achievement table, evaluated after every match.
var Badges = []Badge{
	{
		ID:          "primeira_vitoria",
		Name:        "Primeira Vitória",
		Description: "Vença sua primeira partida",
		Icon:        "🏆",
		Unlocked: func(u *domain.User) bool {
			return u.Stats.TotalWins >= 1
		},
	},
	{
		ID:          "veterano",
		Name:        "Veterano",
		Description: "Jogue 10 partidas",
		Icon:        "🎖️",
		Unlocked: func(u *domain.User) bool {
			return u.Stats.TotalMatches >= 10
		},
	},
	{
		ID:          "campeao",
		Name:        "Campeão",
		Description: "Vença 10 partidas",
		Icon:        "🥇",
		Unlocked: func(u *domain.User) bool {
			return u.Stats.TotalWins >= 10
		},
	},
	{
		ID:          "sobrevivente",
		Name:        "Sobrevivente",
		Description: "Chegue à rodada 10 no modo sobrevivência",
		Icon:        "🛡️",
		Unlocked: func(u *domain.User) bool {
			return u.Stats.HighestRoundSurvival >= 10
		},
	},
	{
		ID:          "explorador",
		Name:        "Explorador Musical",
		Description: "Jogue 5 gêneros diferentes",
		Icon:        "🧭",
		Unlocked: func(u *domain.User) bool {
			return len(u.Stats.GenreCounts) >= 5
		},
	},
	{
		ID:          "milionario",
		Name:        "Milionário",
		Description: "Acumule 500 moedas ganhas",
		Icon:        "💰",
		Unlocked: func(u *domain.User) bool {
			return u.Stats.TotalCoinsEarned >= 500
		},
	},
	{
		ID:          "nivel_cinco",
		Name:        "Subindo na Vida",
		Description: "Alcance o nível 5",
		Icon:        "🚀",
		Unlocked: func(u *domain.User) bool {
			return u.Level >= 5
		},
	},
}

// challengeTemplate is one rotatable daily challenge shape.
type challengeTemplate struct {
	description string
	target      int
	ctype       domain.ChallengeType
	rewardXP    int
	rewardCoins int
}

// challengeTemplates is the rotation pool for daily challenges.
var challengeTemplates = []challengeTemplate{
	{description: "Jogue 3 partidas", target: 3, ctype: domain.ChallengePlay, rewardXP: 30, rewardCoins: 15},
	{description: "Vença 1 partida", target: 1, ctype: domain.ChallengeWin, rewardXP: 40, rewardCoins: 20},
	{description: "Vença 2 partidas", target: 2, ctype: domain.ChallengeWin, rewardXP: 60, rewardCoins: 30},
	{description: "Marque 10 pontos somados", target: 10, ctype: domain.ChallengeScore, rewardXP: 50, rewardCoins: 25},
	{description: "Jogue 5 partidas", target: 5, ctype: domain.ChallengePlay, rewardXP: 50, rewardCoins: 25},
}
