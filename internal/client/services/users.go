package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/repositories/users"
	"github.com/dmitrijs2005/kotoba/internal/dbx"
	"github.com/dmitrijs2005/kotoba/internal/observable"
	"github.com/dmitrijs2005/kotoba/internal/timex"
	"github.com/jmoiron/sqlx"
)

// ErrUnknownUser means the local users table has no row for the id.
var ErrUnknownUser = errors.New("unknown local user")

// UserService manages the local users table.
type UserService struct {
	db  *sqlx.DB
	now func() time.Time

	// progressChanges is bumped when a delete cascades into
	// learning_progress. It may be nil.
	progressChanges *observable.Counter
}

// NewUserService returns a UserService over db. progressChanges is usually
// ProgressService.Changes(), so that progress live queries follow cascades.
func NewUserService(db *sqlx.DB, progressChanges *observable.Counter) *UserService {
	return &UserService{db: db, now: time.Now, progressChanges: progressChanges}
}

func (s *UserService) repo() users.Repository {
	return users.NewSQLiteRepository(s.db)
}

func (s *UserService) Upsert(ctx context.Context, u models.User) error {
	if err := s.repo().Upsert(ctx, u); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// Get returns (nil, nil) when the user is unknown.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo().Get(ctx, id)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return u, nil
}

// Sync records a signed-in account. A new row gets the current time as its
// join date; an existing row keeps its join date, streak and avatar.
func (s *UserService) Sync(ctx context.Context, id, name, email string) (models.User, error) {
	var out models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			out = models.User{ID: id, Name: name, Email: email, JoinDate: s.now()}
		} else {
			out = *existing
			out.Email = email
			if name != "" {
				out.Name = name
			}
		}
		return repo.Upsert(ctx, out)
	})
	if err != nil {
		return models.User{}, &StorageError{Err: err}
	}
	return out, nil
}

func (s *UserService) UpdateStreak(ctx context.Context, id string, streak int) error {
	if streak < 0 {
		return &ValidationError{Field: "dailyStreak", Message: "streak cannot be negative"}
	}
	if err := s.repo().UpdateStreak(ctx, id, streak); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

func (s *UserService) UpdateLastActive(ctx context.Context, id string, at time.Time) error {
	if err := s.repo().UpdateLastActive(ctx, id, at); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// Delete removes the user together with its progress rows.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo().Delete(ctx, id); err != nil {
		return &StorageError{Err: err}
	}
	if s.progressChanges != nil {
		s.progressChanges.Bump()
	}
	return nil
}

// NextStreak applies the daily streak rules for activity at now after the
// last activity at last.
func NextStreak(streak int, last, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	switch timex.DaysBetween(last, now) {
	case 0:
		return max(streak, 1)
	case 1:
		return streak + 1
	default:
		return 1
	}
}

// RecordActivity updates the streak and last-active time of id for activity
// at now.
func (s *UserService) RecordActivity(ctx context.Context, id string, now time.Time) (models.User, error) {
	var out models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		u, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUnknownUser
		}

		u.DailyStreak = NextStreak(u.DailyStreak, u.LastActiveDate, now)
		u.LastActiveDate = now
		if err := repo.UpdateStreak(ctx, id, u.DailyStreak); err != nil {
			return err
		}
		if err := repo.UpdateLastActive(ctx, id, now); err != nil {
			return err
		}
		out = *u
		return nil
	})
	if errors.Is(err, ErrUnknownUser) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, &StorageError{Err: err}
	}
	return out, nil
}
