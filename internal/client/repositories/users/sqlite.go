package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/dbx"
	"github.com/dmitrijs2005/kotoba/internal/timex"
	"github.com/jmoiron/sqlx"
)

type userRow struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	ProfileImageURL sql.NullString `db:"profile_image_url"`
	JoinDate        int64          `db:"join_date"`
	DailyStreak     int            `db:"daily_streak"`
	LastActiveDate  int64          `db:"last_active_date"`
}

func toRow(u models.User) userRow {
	r := userRow{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		JoinDate:       timex.ToMillis(u.JoinDate),
		DailyStreak:    u.DailyStreak,
		LastActiveDate: timex.ToMillis(u.LastActiveDate),
	}
	if u.ProfileImageURL != nil {
		r.ProfileImageURL = sql.NullString{String: *u.ProfileImageURL, Valid: true}
	}
	return r
}

func (r userRow) model() *models.User {
	u := &models.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		JoinDate:       timex.FromMillis(r.JoinDate),
		DailyStreak:    r.DailyStreak,
		LastActiveDate: timex.FromMillis(r.LastActiveDate),
	}
	if r.ProfileImageURL.Valid {
		url := r.ProfileImageURL.String
		u.ProfileImageURL = &url
	}
	return u
}

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert uses ON CONFLICT DO UPDATE rather than INSERT OR REPLACE: a replace
// deletes the old row first, which would cascade to its progress rows.
func (r *SQLiteRepository) Upsert(ctx context.Context, u models.User) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO users (id, name, email, profile_image_url, join_date, daily_streak, last_active_date)
		VALUES (:id, :name, :email, :profile_image_url, :join_date, :daily_streak, :last_active_date)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			profile_image_url = excluded.profile_image_url,
			join_date = excluded.join_date,
			daily_streak = excluded.daily_streak,
			last_active_date = excluded.last_active_date
	`, toRow(u))
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", u.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, email, profile_image_url, join_date, daily_streak, last_active_date
		FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return row.model(), nil
}

func (r *SQLiteRepository) UpdateStreak(ctx context.Context, id string, streak int) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET daily_streak = ? WHERE id = ?`, streak, id); err != nil {
		return fmt.Errorf("failed to update streak of %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateLastActive(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_active_date = ? WHERE id = ?`, timex.ToMillis(at), id); err != nil {
		return fmt.Errorf("failed to update last active of %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
