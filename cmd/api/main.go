// @title QuizQuezt API
// @description Backend API for the QuizQuezt learning app
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nebyuabel/quizquezt-app/internal/api"
	"github.com/nebyuabel/quizquezt-app/internal/cache"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
	"github.com/nebyuabel/quizquezt-app/internal/service"
	"github.com/nebyuabel/quizquezt-app/pkg/cleanup"
	"github.com/nebyuabel/quizquezt-app/pkg/config"
	jwtservice "github.com/nebyuabel/quizquezt-app/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	profilesRepo := repository.NewProfilesRepo(&dbCfg)
	codesRepo := repository.NewPremiumCodesRepo(&dbCfg)

	var lbCache service.LeaderboardCache
	if addr := cfg.GetString("REDIS_ADDRESS"); addr != "" {
		lbCache = cache.New(addr, cfg.GetString("REDIS_PASSWORD"))
	}

	freezeService := service.NewFreezeService(profilesRepo)
	scheduler := cron.New()
	// Sweep shortly after midnight, once yesterday is final
	_, err := scheduler.AddFunc("30 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute*5)
		defer cancel()
		applied, err := freezeService.ApplyFreezes(ctx)
		if err != nil {
			slog.Error("freeze sweep error", slog.String("error", err.Error()))
			return
		}
		slog.Info("freeze sweep finished", slog.Int("applied", applied))
	})
	if err != nil {
		log.Fatal("scheduling freeze sweep error: " + err.Error())
	}
	scheduler.Start()
	cleanup.Register(&cleanup.Job{
		Name: "stopping cron scheduler",
		F: func() error {
			scheduler.Stop()
			return nil
		},
	})

	serv := api.New(&api.ServicesList{
		UserService:        service.NewUserService(profilesRepo),
		ProfileService:     service.NewProfileService(profilesRepo),
		ProgressService:    service.NewProgressService(profilesRepo),
		PremiumService:     service.NewPremiumService(profilesRepo, codesRepo),
		StoreService:       service.NewStoreService(profilesRepo),
		LeaderboardService: service.NewLeaderboardService(profilesRepo, lbCache),
		NotesService:       service.NewNotesService(repository.NewNotesRepo(&dbCfg)),
		ContentService:     service.NewContentService(repository.NewContentRepo(&dbCfg)),
		JwtService:         jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err = serv.Run(cfg.GetStringOrDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
