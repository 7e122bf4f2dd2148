package gamification

// RecordActivity returns existing with today merged in. The input slice is
// never mutated and duplicates collapse, so recording the same day twice
// is a no-op. No format validation happens here; ComputeStreak is the
// line of defense against malformed entries.
func RecordActivity(existing []string, today string) []string {
	merged := make([]string, 0, len(existing)+1)
	seen := make(map[string]struct{}, len(existing)+1)
	for _, d := range existing {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		merged = append(merged, d)
	}
	if _, ok := seen[today]; !ok {
		merged = append(merged, today)
	}
	return merged
}

// MergeDays unions two day sets, keeping first-seen order. Used to fold
// freeze-protected days into the activity set before streak counting:
// a frozen day counts as present for gap-breaking purposes.
func MergeDays(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, set := range [][]string{a, b} {
		for _, d := range set {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			merged = append(merged, d)
		}
	}
	return merged
}
