package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type ProfileService struct {
	repo repository.ProfilesRepositoryI
	now  func() time.Time
}

func NewProfileService(profilesRepo repository.ProfilesRepositoryI) *ProfileService {
	return NewProfileServiceWithClock(profilesRepo, time.Now)
}

func NewProfileServiceWithClock(profilesRepo repository.ProfilesRepositoryI, clock func() time.Time) *ProfileService {
	return &ProfileService{
		repo: profilesRepo,
		now:  clock,
	}
}

// Get returns the profile with the streak recomputed from the quiz-day and
// freeze-day ledgers. Frozen days count as present for gap-breaking. The
// stored current_streak is only a cache; when it drifts it is written back
// best-effort, a write failure never fails the read.
func (ps *ProfileService) Get(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	profile, err := ps.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	merged := gamification.MergeDays(profile.QuizDays, profile.FreezeDays)
	streak := gamification.ComputeStreak(merged, ps.now())
	if streak != profile.CurrentStreak {
		if err := ps.repo.SetStreak(ctx, uid, streak); err != nil {
			slog.Warn("streak write-back failed", slog.String("uid", uid.String()), slog.String("error", err.Error()))
		}
		profile.CurrentStreak = streak
	}
	return profile, nil
}
