package gamification

type Tier struct {
	Name  string `json:"name"`
	MinXP int    `json:"min_xp"`
}

// Ordered by threshold ascending. The first entry is the fallback for any
// XP below the second threshold, so every non-negative XP maps to exactly
// one tier.
var xpTiers = []Tier{
	{Name: "Rookie Thinker", MinXP: 0},
	{Name: "Curious Apprentice", MinXP: 500},
	{Name: "Quiz Adept", MinXP: 1250},
	{Name: "Trivia Scholar", MinXP: 2500},
	{Name: "Knowledge Sage", MinXP: 5000},
	{Name: "Grandmaster Brainiac", MinXP: 10000},
}

// TierForXP returns the highest tier whose threshold is at or below xp.
func TierForXP(xp int) Tier {
	for i := len(xpTiers) - 1; i >= 0; i-- {
		if xp >= xpTiers[i].MinXP {
			return xpTiers[i]
		}
	}
	return xpTiers[0]
}

// NextTier returns the tier above t, or false if t is the highest.
func NextTier(t Tier) (Tier, bool) {
	for i, tier := range xpTiers {
		if tier.Name == t.Name {
			if i+1 < len(xpTiers) {
				return xpTiers[i+1], true
			}
			return Tier{}, false
		}
	}
	return Tier{}, false
}

// Tiers returns a copy of the tier table, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(xpTiers))
	copy(out, xpTiers)
	return out
}
