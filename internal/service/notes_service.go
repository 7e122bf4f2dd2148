package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/nebyuabel/quizquezt-app/internal/error_values"
	"github.com/nebyuabel/quizquezt-app/internal/repository"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type NotesService struct {
	repo repository.NotesRepositoryI
}

func NewNotesService(notesRepo repository.NotesRepositoryI) *NotesService {
	if notesRepo == nil {
		log.Fatal("provided nil notesRepo")
	}
	return &NotesService{
		repo: notesRepo,
	}
}

func (ns *NotesService) CreateNote(ctx context.Context, uid uuid.UUID, req *CreateNoteRequest) (*entity.Note, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	n := entity.Note{
		UserID:  uid,
		Title:   req.Title,
		Content: req.Content,
		Subject: req.Subject,
	}
	id, err := ns.repo.Create(ctx, &n)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	note, err := ns.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return note, nil
}

func (ns *NotesService) GetNote(ctx context.Context, noteID, uid uuid.UUID) (*entity.Note, error) {
	note, err := ns.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return nil, err
		}
		return nil, errors.New("notes repository error: " + err.Error())
	}
	if note.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return note, nil
}

func (ns *NotesService) GetUserNotes(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Note, error) {
	notes, err := ns.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("notes repository error: " + err.Error())
	}
	return notes, nil
}

func (ns *NotesService) UpdateNote(ctx context.Context, noteID, uid uuid.UUID, req *CreateNoteRequest) error {
	note, err := ns.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	if note.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	note.Title = req.Title
	note.Content = req.Content
	note.Subject = req.Subject
	err = ns.repo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	return nil
}

func (ns *NotesService) DeleteNote(ctx context.Context, noteID, uid uuid.UUID) error {
	note, err := ns.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	if note.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ns.repo.Delete(ctx, noteID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoteNotFound) {
			return err
		}
		return errors.New("notes repository error: " + err.Error())
	}
	return nil
}
