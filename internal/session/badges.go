package session

// BadgeTier names a streak reward level.
type BadgeTier string

const (
	TierBronze BadgeTier = "bronze"
	TierSilver BadgeTier = "silver"
	TierGold   BadgeTier = "gold"
)

// Badge is a reward unlocked at a streak threshold.
type Badge struct {
	Tier      BadgeTier `json:"tier"`
	Name      string    `json:"name"`
	Threshold int       `json:"threshold"`
}

// AllBadges lists every badge in ascending threshold order.
var AllBadges = []Badge{
	{Tier: TierBronze, Name: "Bronze Mindful Badge", Threshold: 3},
	{Tier: TierSilver, Name: "Silver Balance Badge", Threshold: 5},
	{Tier: TierGold, Name: "Gold Wellness Badge", Threshold: 7},
}

// BadgesFor returns every badge whose threshold streak meets. Badges are
// cumulative: a streak of 7 holds all three.
func BadgesFor(streak int) []Badge {
	var earned []Badge
	for _, b := range AllBadges {
		if streak >= b.Threshold {
			earned = append(earned, b)
		}
	}
	return earned
}

// NextBadge returns the next badge to unlock and how many more days it
// needs. ok is false once every badge is held.
func NextBadge(streak int) (badge Badge, remaining int, ok bool) {
	for _, b := range AllBadges {
		if streak < b.Threshold {
			return b, b.Threshold - streak, true
		}
	}
	return Badge{}, 0, false
}
