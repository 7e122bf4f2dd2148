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

type NotesRepository struct {
	conn PgConnection
}

func NewNotesRepo(cfg DBConfig) *NotesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for notesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for notesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &NotesRepository{
		conn: pool,
	}
}

func NewNotesRepoWithConn(conn PgConnection) *NotesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for notesRepo: " + err.Error())
	}
	return &NotesRepository{
		conn: conn,
	}
}

func (nr *NotesRepository) Create(ctx context.Context, note *entity.Note) (uuid.UUID, error) {
	var id uuid.UUID
	row := nr.conn.QueryRow(ctx, `INSERT INTO notes (user_id, title, content, subject) VALUES ($1, $2, $3, $4) RETURNING id;`,
		note.UserID, note.Title, note.Content, note.Subject,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrUserNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating note db error: " + err.Error())
	}
	return id, nil
}

func (nr *NotesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var note entity.Note
	note.ID = id
	row := nr.conn.QueryRow(ctx, `SELECT user_id, title, content, subject, created_at, updated_at FROM notes WHERE id = $1;`, id)
	if err := row.Scan(&note.UserID, &note.Title, &note.Content, &note.Subject, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrNoteNotFound
		}
		return nil, errors.New("getting note by id error: " + err.Error())
	}
	return &note, nil
}

func (nr *NotesRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Note, error) {
	notes := make([]*entity.Note, 0)
	rows, err := nr.conn.Query(ctx, `SELECT id, user_id, title, content, subject, created_at, updated_at
		FROM notes WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting notes by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		n := entity.Note{}
		err = rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Subject, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, errors.New("scanning note error: " + err.Error())
		}
		notes = append(notes, &n)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return notes, nil
}

func (nr *NotesRepository) Update(ctx context.Context, note *entity.Note) error {
	ct, err := nr.conn.Exec(ctx, `UPDATE notes SET title = $1, content = $2, subject = $3, updated_at = NOW() WHERE id = $4;`,
		note.Title, note.Content, note.Subject, note.ID,
	)
	if err != nil {
		return errors.New("error updating note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}

func (nr *NotesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := nr.conn.Exec(ctx, `DELETE FROM notes WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}
