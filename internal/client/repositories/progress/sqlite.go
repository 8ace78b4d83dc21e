package progress

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

const selectColumns = `SELECT id, user_id, category, subcategory, total_items, completed_items, last_study_date
	FROM learning_progress`

type progressRow struct {
	ID             int64  `db:"id"`
	UserID         string `db:"user_id"`
	Category       string `db:"category"`
	Subcategory    string `db:"subcategory"`
	TotalItems     int    `db:"total_items"`
	CompletedItems int    `db:"completed_items"`
	LastStudyDate  int64  `db:"last_study_date"`
}

func toRow(p models.LearningProgress) progressRow {
	return progressRow{
		ID:             p.ID,
		UserID:         p.UserID,
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		TotalItems:     p.TotalItems,
		CompletedItems: p.CompletedItems,
		LastStudyDate:  timex.ToMillis(p.LastStudyDate),
	}
}

func (r progressRow) model() models.LearningProgress {
	return models.LearningProgress{
		ID:             r.ID,
		UserID:         r.UserID,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		TotalItems:     r.TotalItems,
		CompletedItems: r.CompletedItems,
		LastStudyDate:  timex.FromMillis(r.LastStudyDate),
	}
}

func toModels(rows []progressRow) []models.LearningProgress {
	out := make([]models.LearningProgress, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out
}

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, p models.LearningProgress) (int64, error) {
	row := toRow(p)

	var (
		res sql.Result
		err error
	)
	if row.ID == 0 {
		res, err = sqlx.NamedExecContext(ctx, r.db, `
			INSERT INTO learning_progress (user_id, category, subcategory, total_items, completed_items, last_study_date)
			VALUES (:user_id, :category, :subcategory, :total_items, :completed_items, :last_study_date)`, row)
	} else {
		res, err = sqlx.NamedExecContext(ctx, r.db, `
			INSERT OR REPLACE INTO learning_progress (id, user_id, category, subcategory, total_items, completed_items, last_study_date)
			VALUES (:id, :user_id, :category, :subcategory, :total_items, :completed_items, :last_study_date)`, row)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert progress: %w", err)
	}

	if row.ID != 0 {
		return row.ID, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get progress id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p models.LearningProgress) (bool, error) {
	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE learning_progress SET
			user_id = :user_id,
			category = :category,
			subcategory = :subcategory,
			total_items = :total_items,
			completed_items = :completed_items,
			last_study_date = :last_study_date
		WHERE id = :id`, toRow(p))
	if err != nil {
		return false, fmt.Errorf("failed to update progress %d: %w", p.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) UpdateCompletedItems(ctx context.Context, id int64, completed int, lastStudy time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE learning_progress SET completed_items = ?, last_study_date = ? WHERE id = ?`,
		completed, timex.ToMillis(lastStudy), id)
	if err != nil {
		return fmt.Errorf("failed to update completed items of %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) AllForUser(ctx context.Context, userID string) ([]models.LearningProgress, error) {
	var rows []progressRow
	err := r.db.SelectContext(ctx, &rows,
		selectColumns+` WHERE user_id = ? ORDER BY category, subcategory, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress of %s: %w", userID, err)
	}
	return toModels(rows), nil
}

func (r *SQLiteRepository) ByCategory(ctx context.Context, userID, category string) ([]models.LearningProgress, error) {
	var rows []progressRow
	err := r.db.SelectContext(ctx, &rows,
		selectColumns+` WHERE user_id = ? AND category = ? ORDER BY subcategory, id`, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s progress of %s: %w", category, userID, err)
	}
	return toModels(rows), nil
}

func (r *SQLiteRepository) BySubcategory(ctx context.Context, userID, category, subcategory string) (*models.LearningProgress, error) {
	var row progressRow
	err := r.db.GetContext(ctx, &row,
		selectColumns+` WHERE user_id = ? AND category = ? AND subcategory = ? ORDER BY id LIMIT 1`,
		userID, category, subcategory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s progress of %s: %w", category, subcategory, userID, err)
	}
	p := row.model()
	return &p, nil
}

func (r *SQLiteRepository) CompletedToday(ctx context.Context, userID string, since time.Time) (int, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(completed_items), 0) FROM learning_progress
		WHERE user_id = ? AND last_study_date >= ?`, userID, timex.ToMillis(since)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum completed items of %s: %w", userID, err)
	}
	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM learning_progress WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete progress %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM learning_progress WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete progress of %s: %w", userID, err)
	}
	return nil
}
