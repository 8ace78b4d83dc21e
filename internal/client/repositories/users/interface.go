package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

type Repository interface {
	// Upsert inserts u or replaces every column of the row with the same id.
	Upsert(ctx context.Context, u models.User) error
	// Get returns (nil, nil) when the user is unknown.
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateStreak(ctx context.Context, id string, streak int) error
	UpdateLastActive(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
