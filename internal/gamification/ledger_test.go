package gamification_test

import (
	"testing"

	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/stretchr/testify/assert"
)

func TestRecordActivity(t *testing.T) {
	t.Run("appends a new day", func(t *testing.T) {
		got := gamification.RecordActivity([]string{"2025-03-08", "2025-03-09"}, "2025-03-10")
		assert.Equal(t, []string{"2025-03-08", "2025-03-09", "2025-03-10"}, got)
	})
	t.Run("idempotent", func(t *testing.T) {
		once := gamification.RecordActivity([]string{"2025-03-09"}, "2025-03-10")
		twice := gamification.RecordActivity(once, "2025-03-10")
		assert.Equal(t, once, twice)
	})
	t.Run("collapses duplicates in input", func(t *testing.T) {
		got := gamification.RecordActivity([]string{"2025-03-09", "2025-03-09"}, "2025-03-10")
		assert.Equal(t, []string{"2025-03-09", "2025-03-10"}, got)
	})
	t.Run("does not mutate input", func(t *testing.T) {
		existing := []string{"2025-03-08", "2025-03-09"}
		_ = gamification.RecordActivity(existing, "2025-03-10")
		assert.Equal(t, []string{"2025-03-08", "2025-03-09"}, existing)
	})
	t.Run("nil input", func(t *testing.T) {
		got := gamification.RecordActivity(nil, "2025-03-10")
		assert.Equal(t, []string{"2025-03-10"}, got)
	})
}

func TestMergeDays(t *testing.T) {
	t.Run("union without duplicates", func(t *testing.T) {
		got := gamification.MergeDays([]string{"2025-03-10", "2025-03-08"}, []string{"2025-03-09", "2025-03-08"})
		assert.ElementsMatch(t, []string{"2025-03-08", "2025-03-09", "2025-03-10"}, got)
	})
	t.Run("both empty", func(t *testing.T) {
		assert.Empty(t, gamification.MergeDays(nil, nil))
	})
}
