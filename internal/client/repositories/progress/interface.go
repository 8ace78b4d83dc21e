package progress

import (
	"context"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

type Repository interface {
	// Insert stores p and returns its id. A zero p.ID allocates a new row;
	// otherwise the row with that id is replaced.
	Insert(ctx context.Context, p models.LearningProgress) (int64, error)
	// Update overwrites the row with p.ID and reports whether it existed.
	Update(ctx context.Context, p models.LearningProgress) (bool, error)
	UpdateCompletedItems(ctx context.Context, id int64, completed int, lastStudy time.Time) error

	AllForUser(ctx context.Context, userID string) ([]models.LearningProgress, error)
	ByCategory(ctx context.Context, userID, category string) ([]models.LearningProgress, error)
	// BySubcategory returns (nil, nil) when there is no such row.
	BySubcategory(ctx context.Context, userID, category, subcategory string) (*models.LearningProgress, error)
	// CompletedToday sums completed items studied at or after since.
	CompletedToday(ctx context.Context, userID string, since time.Time) (int, error)

	Delete(ctx context.Context, id int64) error
	DeleteForUser(ctx context.Context, userID string) error
}
