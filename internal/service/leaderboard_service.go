package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardCache is a best-effort byte cache. A miss or a failing
// backend only costs a database round trip.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type LeaderboardService struct {
	repo  repository.ProfilesRepositoryI
	cache LeaderboardCache
}

// NewLeaderboardService accepts a nil cache, in which case every read
// hits the database.
func NewLeaderboardService(profilesRepo repository.ProfilesRepositoryI, cache LeaderboardCache) *LeaderboardService {
	if profilesRepo == nil {
		log.Fatal("on leaderboard service provided nil repo")
	}
	return &LeaderboardService{
		repo:  profilesRepo,
		cache: cache,
	}
}

func (serv *LeaderboardService) Global(ctx context.Context, limit int) ([]*entity.LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:global:%d", limit)
	if entries, ok := serv.cached(ctx, key); ok {
		return entries, nil
	}
	profiles, err := serv.repo.TopByXP(ctx, limit)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	entries := toEntries(profiles)
	serv.store(ctx, key, entries)
	return entries, nil
}

func (serv *LeaderboardService) ForTier(ctx context.Context, uid uuid.UUID, limit int) ([]*entity.LeaderboardEntry, error) {
	profile, err := serv.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	tier := gamification.TierForXP(profile.XP)
	maxXP := -1
	if next, ok := gamification.NextTier(tier); ok {
		maxXP = next.MinXP
	}
	key := fmt.Sprintf("leaderboard:tier:%d:%d:%d", tier.MinXP, maxXP, limit)
	if entries, ok := serv.cached(ctx, key); ok {
		return entries, nil
	}
	profiles, err := serv.repo.ByXPRange(ctx, tier.MinXP, maxXP, limit)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	entries := toEntries(profiles)
	serv.store(ctx, key, entries)
	return entries, nil
}

func (serv *LeaderboardService) cached(ctx context.Context, key string) ([]*entity.LeaderboardEntry, bool) {
	if serv.cache == nil {
		return nil, false
	}
	raw, ok := serv.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var entries []*entity.LeaderboardEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		slog.Warn("corrupt leaderboard cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return entries, true
}

func (serv *LeaderboardService) store(ctx context.Context, key string, entries []*entity.LeaderboardEntry) {
	if serv.cache == nil {
		return
	}
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return
	}
	serv.cache.Set(ctx, key, raw, leaderboardCacheTTL)
}

func toEntries(profiles []*entity.Profile) []*entity.LeaderboardEntry {
	entries := make([]*entity.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, &entity.LeaderboardEntry{
			UserID:    p.ID,
			Username:  p.Username,
			AvatarURL: p.AvatarURL,
			XP:        p.XP,
			Tier:      gamification.TierForXP(p.XP).Name,
		})
	}
	return entries
}
