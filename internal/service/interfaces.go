package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nebyuabel/quizquezt-app/internal/gamification"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type RegisterRequest struct {
	Username string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new profile row. Returns profile with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.Profile, error)
	// Compares given credentials. If ok, gives back profile with ID.
	Login(ctx context.Context, username, password string) (*entity.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type ProfileServiceI interface {
	// Reads the profile with streak recomputed from the day ledgers.
	// The stored counter is a cache and is written back when it drifts.
	Get(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
}

type QuizOutcome struct {
	Correct int `validate:"min=0"`
	Total   int `validate:"min=0,gtefield=Correct"`
}

type FlashcardOutcome struct {
	Remembered int `validate:"min=0"`
	Briefly    int `validate:"min=0"`
	Forgot     int `validate:"min=0"`
}

type ProgressResult struct {
	XPEarned    int     `json:"xp_earned"`
	CoinsEarned int     `json:"coins_earned"`
	TotalXP     int     `json:"total_xp"`
	TotalCoins  int     `json:"total_coins"`
	Streak      int     `json:"streak"`
	Accuracy    float64 `json:"accuracy"`
	Tier        string  `json:"tier"`
}

type ProgressServiceI interface {
	// Applies a finished quiz session to the profile: accrues XP/coins,
	// records today in the quiz-day ledger, recomputes the streak
	CompleteQuiz(ctx context.Context, uid uuid.UUID, outcome *QuizOutcome) (*ProgressResult, error)
	// Same for a finished flashcard session (XP only, no coins)
	CompleteFlashcards(ctx context.Context, uid uuid.UUID, outcome *FlashcardOutcome) (*ProgressResult, error)
}

type RedeemResult struct {
	PremiumUntil time.Time `json:"premium_until"`
}

type PremiumServiceI interface {
	// Redeems a premium code for uid. Rejections are distinct sentinel
	// errors: ErrAlreadyPremium, ErrCodeNotFound, ErrCodeAlreadyUsed,
	// ErrCodeExpired
	Redeem(ctx context.Context, uid uuid.UUID, rawCode string) (*RedeemResult, error)
}

type StoreItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type StoreServiceI interface {
	Items() []StoreItem
	// Purchase deducts the price and applies the item effect. Fails with
	// ErrUnknownItem or ErrInsufficientCoins
	Purchase(ctx context.Context, uid uuid.UUID, itemID string) (*StoreItem, error)
}

type LeaderboardServiceI interface {
	// Top entries by XP across all users
	Global(ctx context.Context, limit int) ([]*entity.LeaderboardEntry, error)
	// Entries within the calling user's XP tier
	ForTier(ctx context.Context, uid uuid.UUID, limit int) ([]*entity.LeaderboardEntry, error)
}

type CreateNoteRequest struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required"`
	Subject string `validate:"max=100"`
}

type NotesServiceI interface {
	CreateNote(ctx context.Context, uid uuid.UUID, req *CreateNoteRequest) (*entity.Note, error)
	GetNote(ctx context.Context, noteID, uid uuid.UUID) (*entity.Note, error)
	GetUserNotes(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Note, error)
	UpdateNote(ctx context.Context, noteID, uid uuid.UUID, req *CreateNoteRequest) error
	DeleteNote(ctx context.Context, noteID, uid uuid.UUID) error
}

type ContentServiceI interface {
	Questions(ctx context.Context, subject, grade string, limit int) ([]*entity.Question, error)
	Flashcards(ctx context.Context, subject string, limit int) ([]*entity.Flashcard, error)
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

// Tiers is re-exported for handlers that render the tier ladder.
func Tiers() []gamification.Tier {
	return gamification.Tiers()
}
