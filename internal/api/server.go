package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nebyuabel/quizquezt-app/internal/service"
)

type Server struct {
	mx                 *chi.Mux
	userService        service.UserServiceI
	profileService     service.ProfileServiceI
	progressService    service.ProgressServiceI
	premiumService     service.PremiumServiceI
	storeService       service.StoreServiceI
	leaderboardService service.LeaderboardServiceI
	notesService       service.NotesServiceI
	contentService     service.ContentServiceI
	jwtService         JWTServiceI
}

type ServicesList struct {
	UserService        service.UserServiceI
	ProfileService     service.ProfileServiceI
	ProgressService    service.ProgressServiceI
	PremiumService     service.PremiumServiceI
	StoreService       service.StoreServiceI
	LeaderboardService service.LeaderboardServiceI
	NotesService       service.NotesServiceI
	ContentService     service.ContentServiceI
	JwtService         JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                 chi.NewMux(),
		userService:        servicesOptions.UserService,
		profileService:     servicesOptions.ProfileService,
		progressService:    servicesOptions.ProgressService,
		premiumService:     servicesOptions.PremiumService,
		storeService:       servicesOptions.StoreService,
		leaderboardService: servicesOptions.LeaderboardService,
		notesService:       servicesOptions.NotesService,
		contentService:     servicesOptions.ContentService,
		jwtService:         servicesOptions.JwtService,
	}
}

func (s *Server) setupRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Get("/profile", s.GetProfile)
			r.Post("/progress/quiz", s.CompleteQuiz)
			r.Post("/progress/flashcards", s.CompleteFlashcards)
			r.Post("/premium/redeem", s.RedeemPremium)
			r.Get("/store/items", s.StoreItems)
			r.Post("/store/purchase", s.Purchase)
			r.Get("/leaderboard", s.Leaderboard)
			r.Get("/questions", s.Questions)
			r.Get("/flashcards", s.Flashcards)
			r.Route("/notes", func(r chi.Router) {
				r.Post("/", s.CreateNote)
				r.Get("/", s.GetNotes)
				r.Get("/{id}", s.GetNote)
				r.Put("/{id}", s.UpdateNote)
				r.Delete("/{id}", s.DeleteNote)
			})
		})
	})
}

func (s *Server) Run(address string) error {
	s.setupRoutes()
	slog.Info("server starting", slog.String("address", address))
	return http.ListenAndServe(address, s.mx)
}

// Handler exposes the configured mux, used by handler tests.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mx
}
