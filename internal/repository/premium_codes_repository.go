package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/pkg/cleanup"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type PremiumCodesRepository struct {
	conn PgConnection
}

func NewPremiumCodesRepo(cfg DBConfig) *PremiumCodesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for premiumCodesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for premiumCodesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PremiumCodesRepository{
		conn: pool,
	}
}

func NewPremiumCodesRepoWithConn(conn PgConnection) *PremiumCodesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for premiumCodesRepo: " + err.Error())
	}
	return &PremiumCodesRepository{
		conn: conn,
	}
}

func (cr *PremiumCodesRepository) Create(ctx context.Context, code *entity.PremiumCode) error {
	_, err := cr.conn.Exec(ctx, `INSERT INTO premium_codes (code, expires_at) VALUES ($1, $2);`,
		code.Code, code.ExpiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errors.New("code already exists")
			}
		}
		return errors.New("creating premium code error: " + err.Error())
	}
	return nil
}

func (cr *PremiumCodesRepository) GetByCode(ctx context.Context, code string) (*entity.PremiumCode, error) {
	var c entity.PremiumCode
	row := cr.conn.QueryRow(ctx,
		`SELECT id, code, is_used, expires_at, activated_by, activated_at, created_at FROM premium_codes WHERE code = $1;`,
		code,
	)
	err := row.Scan(&c.ID, &c.Code, &c.IsUsed, &c.ExpiresAt, &c.ActivatedBy, &c.ActivatedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCodeNotFound
		}
		return nil, errors.New("searching premium code error: " + err.Error())
	}
	return &c, nil
}

// MarkUsed is the only write path for is_used. The WHERE clause makes it a
// compare-and-swap: of two concurrent redemptions of one code exactly one
// sees RowsAffected = 1, the other gets ErrCodeAlreadyUsed.
func (cr *PremiumCodesRepository) MarkUsed(ctx context.Context, codeID, uid uuid.UUID) error {
	ct, err := cr.conn.Exec(ctx,
		`UPDATE premium_codes SET is_used = TRUE, activated_by = $1, activated_at = NOW() WHERE id = $2 AND is_used = FALSE;`,
		uid, codeID,
	)
	if err != nil {
		return errors.New("marking premium code used error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCodeAlreadyUsed
	}
	return nil
}
