package gamification

// Per-outcome reward rates.
const (
	XPPerCorrectAnswer    = 20
	CoinsPerCorrectAnswer = 5
	XPPerRemembered       = 10
	XPPerBriefly          = 5
)

type Rewards struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// QuizRewards converts a quiz outcome into XP and coin deltas. Plain
// per-unit products, no partial credit or rounding.
func QuizRewards(correct, xpPerCorrect, coinsPerCorrect int) Rewards {
	return Rewards{
		XP:    correct * xpPerCorrect,
		Coins: correct * coinsPerCorrect,
	}
}

// FlashcardXP converts flashcard session outcomes into an XP delta.
// Forgotten cards earn nothing.
func FlashcardXP(remembered, briefly int) int {
	return remembered*XPPerRemembered + briefly*XPPerBriefly
}

// Accuracy returns the percentage of correct outcomes. An empty session
// is 0, never a division by zero.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
