package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

func checkLevel(level models.Level) error {
	if _, err := models.ParseLevel(string(level)); err != nil {
		return &ValidationError{Field: "level", Message: err.Error()}
	}
	return nil
}

// listOf treats a successful response with null data as an empty list.
func listOf[T any](env *models.Envelope[[]T], err error) ([]T, error) {
	items, err := unwrap(env, err)
	if errors.Is(err, ErrEmptyResponse) {
		return []T{}, nil
	}
	return items, err
}

type VocabularyService interface {
	List(ctx context.Context, level models.Level) ([]models.VocabularyItem, error)
}

type GrammarService interface {
	List(ctx context.Context, level models.Level) ([]models.GrammarPoint, error)
}

type ReadingService interface {
	List(ctx context.Context, level models.Level) ([]models.ReadingPassage, error)
	Get(ctx context.Context, id string) (models.ReadingPassage, error)
}

type contentService struct {
	client client.Client
}

type vocabularyService struct{ contentService }

type grammarService struct{ contentService }

type readingService struct{ contentService }

func NewVocabularyService(c client.Client) VocabularyService {
	return &vocabularyService{contentService{client: c}}
}

func NewGrammarService(c client.Client) GrammarService {
	return &grammarService{contentService{client: c}}
}

func NewReadingService(c client.Client) ReadingService {
	return &readingService{contentService{client: c}}
}

func (s *vocabularyService) List(ctx context.Context, level models.Level) ([]models.VocabularyItem, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	return listOf(s.client.Vocabulary(ctx, level))
}

func (s *grammarService) List(ctx context.Context, level models.Level) ([]models.GrammarPoint, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	return listOf(s.client.Grammar(ctx, level))
}

func (s *readingService) List(ctx context.Context, level models.Level) ([]models.ReadingPassage, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	return listOf(s.client.Readings(ctx, level))
}

func (s *readingService) Get(ctx context.Context, id string) (models.ReadingPassage, error) {
	if id == "" {
		return models.ReadingPassage{}, &ValidationError{Field: "id", Message: "passage id is required"}
	}
	return unwrap(s.client.Reading(ctx, id))
}
