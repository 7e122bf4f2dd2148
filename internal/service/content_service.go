package service

import (
	"context"
	"errors"
	"log"

	"github.com/nebyuabel/quizquezt-app/internal/repository"
	"github.com/nebyuabel/quizquezt-app/pkg/entity"
)

type ContentService struct {
	repo repository.ContentRepositoryI
}

func NewContentService(contentRepo repository.ContentRepositoryI) *ContentService {
	if contentRepo == nil {
		log.Fatal("provided nil contentRepo")
	}
	return &ContentService{
		repo: contentRepo,
	}
}

func (cs *ContentService) Questions(ctx context.Context, subject, grade string, limit int) ([]*entity.Question, error) {
	questions, err := cs.repo.ListQuestions(ctx, subject, grade, limit)
	if err != nil {
		return nil, errors.New("content repository error: " + err.Error())
	}
	return questions, nil
}

func (cs *ContentService) Flashcards(ctx context.Context, subject string, limit int) ([]*entity.Flashcard, error) {
	cards, err := cs.repo.ListFlashcards(ctx, subject, limit)
	if err != nil {
		return nil, errors.New("content repository error: " + err.Error())
	}
	return cards, nil
}
