package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
)

// FreezeService runs the nightly sweep that spends streak-protection
// tokens. A user who held a live streak through the day before yesterday,
// missed yesterday entirely and owns a token gets yesterday marked frozen,
// keeping the streak unbroken under the merge policy.
type FreezeService struct {
	repo repository.ProfilesRepositoryI
	now  func() time.Time
}

func NewFreezeService(profilesRepo repository.ProfilesRepositoryI) *FreezeService {
	return NewFreezeServiceWithClock(profilesRepo, time.Now)
}

func NewFreezeServiceWithClock(profilesRepo repository.ProfilesRepositoryI, clock func() time.Time) *FreezeService {
	if profilesRepo == nil {
		log.Fatal("on freeze service provided nil repo")
	}
	return &FreezeService{
		repo: profilesRepo,
		now:  clock,
	}
}

// ApplyFreezes returns how many profiles had a token spent.
func (serv *FreezeService) ApplyFreezes(ctx context.Context) (int, error) {
	candidates, err := serv.repo.ListFreezeCandidates(ctx)
	if err != nil {
		return 0, errors.New("repository error: " + err.Error())
	}
	now := serv.now()
	yesterday := now.AddDate(0, 0, -1)
	yesterdayStr := yesterday.Format(gamification.DateLayout)
	applied := 0
	for _, profile := range candidates {
		merged := gamification.MergeDays(profile.QuizDays, profile.FreezeDays)
		// Nothing to protect unless the streak was alive through the
		// day before yesterday and broke exactly yesterday.
		if gamification.ComputeStreak(merged, yesterday) > 0 {
			continue
		}
		if gamification.ComputeStreak(merged, yesterday.AddDate(0, 0, -1)) == 0 {
			continue
		}
		err := serv.repo.ConsumeFreeze(ctx, profile.ID, yesterdayStr)
		if err != nil {
			if errors.Is(err, errorvalues.ErrNoFreezeTokens) {
				continue
			}
			slog.Error("freeze sweep failed for profile",
				slog.String("uid", profile.ID.String()), slog.String("error", err.Error()))
			continue
		}
		applied++
	}
	return applied, nil
}
