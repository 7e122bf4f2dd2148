package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/service"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestProfileGetRecomputesStaleStreak(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	written := -1
	repo := &profilesRepoMock{
		findByID: func(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
			return &entity.Profile{
				ID:            userID,
				QuizDays:      []string{day(-5), day(-4)},
				CurrentStreak: 2,
			}, nil
		},
		setStreak: func(ctx context.Context, uid uuid.UUID, streak int) error {
			written = streak
			return nil
		},
	}
	serv := service.NewProfileServiceWithClock(repo, testClock)
	profile, err := serv.Get(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 0, profile.CurrentStreak)
	assert.Equal(t, 0, written)
}

func TestProfileGetFreshStreakSkipsWriteBack(t *testing.T) {
	t.Parallel()
	repo := &profilesRepoMock{
		findByID: func(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
			return &entity.Profile{
				ID:            uuid.New(),
				QuizDays:      []string{day(-1), day(0)},
				CurrentStreak: 2,
			}, nil
		},
		// setStreak intentionally nil: no write-back expected
	}
	serv := service.NewProfileServiceWithClock(repo, testClock)
	profile, err := serv.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, 2, profile.CurrentStreak)
}

func TestProfileGetNotFound(t *testing.T) {
	t.Parallel()
	repo := &profilesRepoMock{
		findByID: func(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
			return nil, errorvalues.ErrUserNotFound
		},
	}
	serv := service.NewProfileServiceWithClock(repo, testClock)
	_, err := serv.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
}
