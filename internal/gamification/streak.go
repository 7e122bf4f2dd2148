// Package gamification holds the pure parts of the reward system:
// streak counting over calendar days, the activity-day ledger, XP/coin
// accrual and XP tier lookup. Nothing here touches the database or the
// wall clock; "today" is always an argument.
package gamification

import (
	"sort"
	"time"
)

// DateLayout is the canonical storage format for activity days.
// Zero-padded, so lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

// CanonicalDay parses a stored day string. Entries that don't round-trip
// through the canonical layout (wrong format, impossible dates) are
// reported invalid and excluded from streak math rather than failing it.
func CanonicalDay(s string) (string, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// ComputeStreak returns the number of consecutive days ending at today on
// which the user has a recorded day. The streak is live only if the most
// recent recorded day is today itself: a user who was active yesterday
// but not yet today has streak 0, and a stray future date also reads as
// 0 until that day arrives. Duplicates collapse, malformed entries are
// ignored, and the first missing day walking backwards stops the count.
func ComputeStreak(days []string, today time.Time) int {
	seen := make(map[string]struct{}, len(days))
	sorted := make([]string, 0, len(days))
	for _, d := range days {
		c, ok := CanonicalDay(d)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		sorted = append(sorted, c)
	}
	if len(sorted) == 0 {
		return 0
	}
	// Most recent first
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	if sorted[0] != today.Format(DateLayout) {
		return 0
	}
	streak := 0
	cursor := today
	for _, d := range sorted {
		if cursor.Format(DateLayout) != d {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
