package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/pkg/cleanup"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

const profileColumns = `id, username, password_hash, avatar_url, xp, coins, quiz_days, freeze_days,
		streak_freeze_count, current_streak, is_premium, premium_until, created_at`

type ProfilesRepository struct {
	conn PgConnection
}

func NewProfilesRepo(cfg DBConfig) *ProfilesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for profilesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProfilesRepository{
		conn: pool,
	}
}

func NewProfilesRepoWithConn(conn PgConnection) *ProfilesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	return &ProfilesRepository{
		conn: conn,
	}
}

func (pr *ProfilesRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if profile == nil {
		return errors.New("profile is nil")
	}
	_, err := pr.conn.Exec(ctx, `INSERT INTO profiles (username, password_hash) VALUES ($1, $2);`,
		profile.Username, profile.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrUserExists
			}
		}
		return errors.New("creating profile db error: " + err.Error())
	}
	return nil
}

func (pr *ProfilesRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = $1;`, username)
	return scanProfileRow(row)
}

func (pr *ProfilesRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1;`, uid)
	return scanProfileRow(row)
}

func (pr *ProfilesRepository) UpdateProgress(ctx context.Context, uid uuid.UUID, xp, coins int, quizDays []string, streak int) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET xp = $1, coins = $2, quiz_days = $3, current_streak = $4 WHERE id = $5;`,
		xp, coins, quizDays, streak, uid,
	)
	if err != nil {
		return errors.New("updating progress error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (pr *ProfilesRepository) SetStreak(ctx context.Context, uid uuid.UUID, streak int) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET current_streak = $1 WHERE id = $2;`, streak, uid)
	if err != nil {
		return errors.New("updating streak error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (pr *ProfilesRepository) SetPremium(ctx context.Context, uid uuid.UUID, until time.Time) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET is_premium = TRUE, premium_until = $1 WHERE id = $2;`, until, uid)
	if err != nil {
		return errors.New("granting premium error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (pr *ProfilesRepository) PurchaseFreeze(ctx context.Context, uid uuid.UUID, price int) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET coins = coins - $1, streak_freeze_count = streak_freeze_count + 1
		WHERE id = $2 AND coins >= $1;`, price, uid)
	if err != nil {
		return errors.New("purchasing freeze error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrInsufficientCoins
	}
	return nil
}

func (pr *ProfilesRepository) SpendCoins(ctx context.Context, uid uuid.UUID, price int) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET coins = coins - $1 WHERE id = $2 AND coins >= $1;`, price, uid)
	if err != nil {
		return errors.New("spending coins error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrInsufficientCoins
	}
	return nil
}

func (pr *ProfilesRepository) ConsumeFreeze(ctx context.Context, uid uuid.UUID, day string) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET streak_freeze_count = streak_freeze_count - 1,
		freeze_days = array_append(freeze_days, $1)
		WHERE id = $2 AND streak_freeze_count > 0 AND NOT (freeze_days @> ARRAY[$1]);`, day, uid)
	if err != nil {
		return errors.New("consuming freeze token error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoFreezeTokens
	}
	return nil
}

func (pr *ProfilesRepository) ListFreezeCandidates(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := pr.conn.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE streak_freeze_count > 0;`)
	if err != nil {
		return nil, errors.New("listing freeze candidates error: " + err.Error())
	}
	return scanProfileRows(rows)
}

func (pr *ProfilesRepository) TopByXP(ctx context.Context, limit int) ([]*entity.Profile, error) {
	rows, err := pr.conn.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY xp DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, errors.New("getting top profiles error: " + err.Error())
	}
	return scanProfileRows(rows)
}

func (pr *ProfilesRepository) ByXPRange(ctx context.Context, minXP, maxXP, limit int) ([]*entity.Profile, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if maxXP < 0 {
		rows, err = pr.conn.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE xp >= $1 ORDER BY xp DESC LIMIT $2;`,
			minXP, limit)
	} else {
		rows, err = pr.conn.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE xp >= $1 AND xp < $2 ORDER BY xp DESC LIMIT $3;`,
			minXP, maxXP, limit)
	}
	if err != nil {
		return nil, errors.New("getting profiles by xp range error: " + err.Error())
	}
	return scanProfileRows(rows)
}

func (pr *ProfilesRepository) Delete(ctx context.Context, uid uuid.UUID) error {
	ct, err := pr.conn.Exec(ctx, `DELETE FROM profiles WHERE id = $1;`, uid)
	if err != nil {
		return errors.New("deleting profile error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func scanProfileRow(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.AvatarURL, &p.XP, &p.Coins, &p.QuizDays, &p.FreezeDays,
		&p.StreakFreezeCount, &p.CurrentStreak, &p.IsPremium, &p.PremiumUntil, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("scanning profile error: " + err.Error())
	}
	return &p, nil
}

func scanProfileRows(rows pgx.Rows) ([]*entity.Profile, error) {
	defer rows.Close()
	profiles := make([]*entity.Profile, 0)
	for rows.Next() {
		var p entity.Profile
		err := rows.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.AvatarURL, &p.XP, &p.Coins, &p.QuizDays, &p.FreezeDays,
			&p.StreakFreezeCount, &p.CurrentStreak, &p.IsPremium, &p.PremiumUntil, &p.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning profile error: " + err.Error())
		}
		profiles = append(profiles, &p)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return profiles, nil
}
