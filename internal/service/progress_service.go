package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
)

// ProgressService turns finished quiz/flashcard sessions into profile
// updates: reward accrual, the day ledger merge and the streak recompute,
// in that order.
type ProgressService struct {
	repo repository.ProfilesRepositoryI
	now  func() time.Time
}

func NewProgressService(profilesRepo repository.ProfilesRepositoryI) *ProgressService {
	return NewProgressServiceWithClock(profilesRepo, time.Now)
}

func NewProgressServiceWithClock(profilesRepo repository.ProfilesRepositoryI, clock func() time.Time) *ProgressService {
	if profilesRepo == nil {
		log.Fatal("on progress service provided nil repo")
	}
	return &ProgressService{
		repo: profilesRepo,
		now:  clock,
	}
}

func (serv *ProgressService) CompleteQuiz(ctx context.Context, uid uuid.UUID, outcome *QuizOutcome) (*ProgressResult, error) {
	if err := validateOutcome(outcome); err != nil {
		return nil, err
	}
	rewards := gamification.QuizRewards(outcome.Correct, gamification.XPPerCorrectAnswer, gamification.CoinsPerCorrectAnswer)
	return serv.apply(ctx, uid, rewards, outcome.Correct, outcome.Total)
}

func (serv *ProgressService) CompleteFlashcards(ctx context.Context, uid uuid.UUID, outcome *FlashcardOutcome) (*ProgressResult, error) {
	if err := validateOutcome(outcome); err != nil {
		return nil, err
	}
	rewards := gamification.Rewards{
		XP: gamification.FlashcardXP(outcome.Remembered, outcome.Briefly),
	}
	total := outcome.Remembered + outcome.Briefly + outcome.Forgot
	return serv.apply(ctx, uid, rewards, outcome.Remembered+outcome.Briefly, total)
}

func (serv *ProgressService) apply(ctx context.Context, uid uuid.UUID, rewards gamification.Rewards, correct, total int) (*ProgressResult, error) {
	profile, err := serv.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	today := serv.now()
	newXP := profile.XP + rewards.XP
	newCoins := profile.Coins + rewards.Coins
	quizDays := gamification.RecordActivity(profile.QuizDays, today.Format(gamification.DateLayout))
	streak := gamification.ComputeStreak(gamification.MergeDays(quizDays, profile.FreezeDays), today)
	err = serv.repo.UpdateProgress(ctx, uid, newXP, newCoins, quizDays, streak)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	return &ProgressResult{
		XPEarned:    rewards.XP,
		CoinsEarned: rewards.Coins,
		TotalXP:     newXP,
		TotalCoins:  newCoins,
		Streak:      streak,
		Accuracy:    gamification.Accuracy(correct, total),
		Tier:        gamification.TierForXP(newXP).Name,
	}, nil
}

func validateOutcome(outcome any) error {
	err := validate.Struct(outcome)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}
