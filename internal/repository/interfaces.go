package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type ProfilesRepositoryI interface {
	// Creates new profile in database
	Create(ctx context.Context, profile *entity.Profile) error
	// Looks up profile by username. Can be used for login
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)
	// Looks up profile by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Persists the outcome of a completed session: new totals, merged
	// quiz days and the recomputed streak
	UpdateProgress(ctx context.Context, uid uuid.UUID, xp, coins int, quizDays []string, streak int) error
	// Writes back the denormalized streak counter after a read-path recompute
	SetStreak(ctx context.Context, uid uuid.UUID, streak int) error
	// Grants premium until the given instant
	SetPremium(ctx context.Context, uid uuid.UUID, until time.Time) error
	// Deducts price and adds one freeze token, only if the balance covers it
	PurchaseFreeze(ctx context.Context, uid uuid.UUID, price int) error
	// Deducts price, only if the balance covers it
	SpendCoins(ctx context.Context, uid uuid.UUID, price int) error
	// Spends one freeze token to mark day as frozen. Conditional: fails
	// if no tokens remain or the day is already frozen
	ConsumeFreeze(ctx context.Context, uid uuid.UUID, day string) error
	// Lists profiles holding at least one freeze token, for the sweeper
	ListFreezeCandidates(ctx context.Context) ([]*entity.Profile, error)
	// Top profiles by XP for the global leaderboard
	TopByXP(ctx context.Context, limit int) ([]*entity.Profile, error)
	// Profiles within [minXP, maxXP) for the tier leaderboard. maxXP < 0
	// means unbounded
	ByXPRange(ctx context.Context, minXP, maxXP, limit int) ([]*entity.Profile, error)
	// Deletes profile
	Delete(ctx context.Context, uid uuid.UUID) error
}

type PremiumCodesRepositoryI interface {
	// Creates a redemption code
	Create(ctx context.Context, code *entity.PremiumCode) error
	// Looks up a code by its normalized string
	GetByCode(ctx context.Context, code string) (*entity.PremiumCode, error)
	// Marks the code used by uid, only if it is currently unused. The
	// conditional update is what makes concurrent redemptions of one
	// code yield exactly one success
	MarkUsed(ctx context.Context, codeID, uid uuid.UUID) error
}

type ContentRepositoryI interface {
	// Lists quiz questions filtered by subject and grade (empty = any)
	ListQuestions(ctx context.Context, subject, grade string, limit int) ([]*entity.Question, error)
	// Lists flashcards filtered by subject (empty = any)
	ListFlashcards(ctx context.Context, subject string, limit int) ([]*entity.Flashcard, error)
}

type NotesRepositoryI interface {
	// Creates new note. Returns its generated id
	Create(ctx context.Context, note *entity.Note) (uuid.UUID, error)
	// Searches note with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	// Lists notes owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Note, error)
	// Updates note by ID (ID in note is necessary)
	Update(ctx context.Context, note *entity.Note) error
	// Deletes note with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
