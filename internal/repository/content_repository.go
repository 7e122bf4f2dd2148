package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nebyuabel/quizquezt-app/pkg/cleanup"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

// ContentRepository serves the read-only quiz question and flashcard decks.
type ContentRepository struct {
	conn PgConnection
}

func NewContentRepo(cfg DBConfig) *ContentRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for contentRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for contentRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ContentRepository{
		conn: pool,
	}
}

func NewContentRepoWithConn(conn PgConnection) *ContentRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for contentRepo: " + err.Error())
	}
	return &ContentRepository{
		conn: conn,
	}
}

func (cr *ContentRepository) ListQuestions(ctx context.Context, subject, grade string, limit int) ([]*entity.Question, error) {
	rows, err := cr.conn.Query(ctx,
		`SELECT id, subject, grade, prompt, choices, answer FROM questions
		WHERE ($1 = '' OR subject = $1) AND ($2 = '' OR grade = $2) ORDER BY RANDOM() LIMIT $3;`,
		subject, grade, limit,
	)
	if err != nil {
		return nil, errors.New("listing questions error: " + err.Error())
	}
	defer rows.Close()
	questions := make([]*entity.Question, 0)
	for rows.Next() {
		var q entity.Question
		err = rows.Scan(&q.ID, &q.Subject, &q.Grade, &q.Prompt, &q.Choices, &q.Answer)
		if err != nil {
			return nil, errors.New("scanning question error: " + err.Error())
		}
		questions = append(questions, &q)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return questions, nil
}

func (cr *ContentRepository) ListFlashcards(ctx context.Context, subject string, limit int) ([]*entity.Flashcard, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if subject == "" {
		rows, err = cr.conn.Query(ctx, `SELECT id, subject, front, back FROM flashcards LIMIT $1;`, limit)
	} else {
		rows, err = cr.conn.Query(ctx, `SELECT id, subject, front, back FROM flashcards WHERE subject = $1 LIMIT $2;`,
			subject, limit)
	}
	if err != nil {
		return nil, errors.New("listing flashcards error: " + err.Error())
	}
	defer rows.Close()
	cards := make([]*entity.Flashcard, 0)
	for rows.Next() {
		var f entity.Flashcard
		err = rows.Scan(&f.ID, &f.Subject, &f.Front, &f.Back)
		if err != nil {
			return nil, errors.New("scanning flashcard error: " + err.Error())
		}
		cards = append(cards, &f)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return cards, nil
}
