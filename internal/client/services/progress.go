package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/repositories/progress"
	"github.com/dmitrijs2005/kotoba/internal/dbx"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/dmitrijs2005/kotoba/internal/observable"
	"github.com/jmoiron/sqlx"
)

// ProgressService is the local progress store. Every successful write bumps
// Changes, so the Watch* queries re-run.
type ProgressService struct {
	db      *sqlx.DB
	log     logging.Logger
	changes *observable.Counter
	now     func() time.Time
}

func NewProgressService(db *sqlx.DB, log logging.Logger) *ProgressService {
	return &ProgressService{
		db:      db,
		log:     log,
		changes: observable.NewCounter(),
		now:     time.Now,
	}
}

func (s *ProgressService) repo() progress.Repository {
	return progress.NewSQLiteRepository(s.db)
}

// Changes is bumped after every write.
func (s *ProgressService) Changes() *observable.Counter { return s.changes }

func checkProgress(p models.LearningProgress) error {
	if p.CompletedItems < 0 {
		return &ValidationError{Field: "completedItems", Message: "completed items cannot be negative"}
	}
	if p.TotalItems < 0 {
		return &ValidationError{Field: "totalItems", Message: "total items cannot be negative"}
	}
	return nil
}

// Insert adds p, or replaces the row with p.ID when it is set.
func (s *ProgressService) Insert(ctx context.Context, p models.LearningProgress) (int64, error) {
	if err := checkProgress(p); err != nil {
		return 0, err
	}

	id, err := s.repo().Insert(ctx, p)
	if err != nil {
		return 0, &StorageError{Err: err}
	}
	s.changes.Bump()
	return id, nil
}

// Update overwrites the row with p.ID. A missing row is not an error: the
// call is accepted and nothing changes.
func (s *ProgressService) Update(ctx context.Context, p models.LearningProgress) error {
	if err := checkProgress(p); err != nil {
		return err
	}

	found, err := s.repo().Update(ctx, p)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !found {
		s.log.Info(ctx, "progress update ignored, row does not exist", "id", p.ID)
		return nil
	}
	s.changes.Bump()
	return nil
}

// UpdateCompletedItems sets the completed count and study time of one row.
// A zero lastStudy means now.
func (s *ProgressService) UpdateCompletedItems(ctx context.Context, id int64, completed int, lastStudy time.Time) error {
	if completed < 0 {
		return &ValidationError{Field: "completedItems", Message: "completed items cannot be negative"}
	}
	if lastStudy.IsZero() {
		lastStudy = s.now()
	}

	if err := s.repo().UpdateCompletedItems(ctx, id, completed, lastStudy); err != nil {
		return &StorageError{Err: err}
	}
	s.changes.Bump()
	return nil
}

func (s *ProgressService) AllForUser(ctx context.Context, userID string) ([]models.LearningProgress, error) {
	rows, err := s.repo().AllForUser(ctx, userID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return rows, nil
}

func (s *ProgressService) ByCategory(ctx context.Context, userID, category string) ([]models.LearningProgress, error) {
	rows, err := s.repo().ByCategory(ctx, userID, category)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return rows, nil
}

// BySubcategory returns nil when there is no row.
func (s *ProgressService) BySubcategory(ctx context.Context, userID, category, subcategory string) (*models.LearningProgress, error) {
	row, err := s.repo().BySubcategory(ctx, userID, category, subcategory)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return row, nil
}

// CompletedToday sums completed items of rows studied since startOfDay.
func (s *ProgressService) CompletedToday(ctx context.Context, userID string, startOfDay time.Time) (int, error) {
	n, err := s.repo().CompletedToday(ctx, userID, startOfDay)
	if err != nil {
		return 0, &StorageError{Err: err}
	}
	return n, nil
}

func (s *ProgressService) Delete(ctx context.Context, id int64) error {
	if err := s.repo().Delete(ctx, id); err != nil {
		return &StorageError{Err: err}
	}
	s.changes.Bump()
	return nil
}

func (s *ProgressService) DeleteForUser(ctx context.Context, userID string) error {
	if err := s.repo().DeleteForUser(ctx, userID); err != nil {
		return &StorageError{Err: err}
	}
	s.changes.Bump()
	return nil
}

// RecordStudy finds or creates the row for userID/category/subcategory and
// sets its counters, stamping the study time with now.
func (s *ProgressService) RecordStudy(ctx context.Context, userID, category, subcategory string, total, completed int) (models.LearningProgress, error) {
	p := models.LearningProgress{
		UserID:         userID,
		Category:       category,
		Subcategory:    subcategory,
		TotalItems:     total,
		CompletedItems: completed,
		LastStudyDate:  s.now(),
	}
	if err := checkProgress(p); err != nil {
		return models.LearningProgress{}, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := progress.NewSQLiteRepository(tx)

		existing, err := repo.BySubcategory(ctx, userID, category, subcategory)
		if err != nil {
			return err
		}
		if existing != nil {
			p.ID = existing.ID
			_, err = repo.Update(ctx, p)
			return err
		}

		p.ID, err = repo.Insert(ctx, p)
		return err
	})
	if err != nil {
		return models.LearningProgress{}, &StorageError{Err: err}
	}

	s.changes.Bump()
	return p, nil
}

func (s *ProgressService) onWatchError(ctx context.Context, query string) func(error) {
	return func(err error) {
		s.log.Error(ctx, "progress query failed", "query", query, "error", err)
	}
}

// WatchAllForUser follows AllForUser. Close the result when done.
func (s *ProgressService) WatchAllForUser(ctx context.Context, userID string) *observable.Live[[]models.LearningProgress] {
	ctx = context.WithoutCancel(ctx)
	return observable.NewLive(s.changes, []models.LearningProgress{}, func() ([]models.LearningProgress, error) {
		return s.repo().AllForUser(ctx, userID)
	}, s.onWatchError(ctx, "all"))
}

// WatchByCategory follows ByCategory. Close the result when done.
func (s *ProgressService) WatchByCategory(ctx context.Context, userID, category string) *observable.Live[[]models.LearningProgress] {
	ctx = context.WithoutCancel(ctx)
	return observable.NewLive(s.changes, []models.LearningProgress{}, func() ([]models.LearningProgress, error) {
		return s.repo().ByCategory(ctx, userID, category)
	}, s.onWatchError(ctx, "category"))
}

// WatchBySubcategory follows BySubcategory. Close the result when done.
func (s *ProgressService) WatchBySubcategory(ctx context.Context, userID, category, subcategory string) *observable.Live[*models.LearningProgress] {
	ctx = context.WithoutCancel(ctx)
	return observable.NewLive(s.changes, (*models.LearningProgress)(nil), func() (*models.LearningProgress, error) {
		return s.repo().BySubcategory(ctx, userID, category, subcategory)
	}, s.onWatchError(ctx, "subcategory"))
}
