package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/logging"
)

// IdentityStore is the part of identity.Store the controllers use.
type IdentityStore interface {
	Save(ctx context.Context, userID, email, token string) error
	Clear(ctx context.Context) error
	Identity() models.Identity
}

// UserSyncer keeps the local users table in step with sign-ins.
type UserSyncer interface {
	Sync(ctx context.Context, id, name, email string) (models.User, error)
	RecordActivity(ctx context.Context, id string, now time.Time) (models.User, error)
}

// Deps are the collaborators shared by the controllers. Users may be nil,
// in which case no local user row is maintained.
type Deps struct {
	Auth     services.AuthService
	Identity IdentityStore
	Users    UserSyncer
	Log      logging.Logger
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	return d
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// syncUser records the account locally. Failures are logged only: the
// session is valid without the row.
func (d Deps) syncUser(ctx context.Context, data models.AuthData) {
	if d.Users == nil {
		return
	}
	if _, err := d.Users.Sync(ctx, data.UserID, data.Name, data.Email); err != nil {
		d.Log.Warn(ctx, "failed to sync local user", "user_id", data.UserID, "error", err)
		return
	}
	if _, err := d.Users.RecordActivity(ctx, data.UserID, d.now()); err != nil {
		d.Log.Warn(ctx, "failed to record activity", "user_id", data.UserID, "error", err)
	}
}

// saveIdentity persists a successful sign-in.
func (d Deps) saveIdentity(ctx context.Context, data models.AuthData) error {
	if err := d.Identity.Save(ctx, data.UserID, data.Email, data.Token); err != nil {
		d.Log.Error(ctx, "failed to persist identity", "user_id", data.UserID, "error", err)
		return &services.StorageError{Err: err}
	}
	return nil
}

// Logout forgets the signed-in identity.
func Logout(ctx context.Context, store IdentityStore) error {
	if err := store.Clear(ctx); err != nil {
		return &services.StorageError{Err: err}
	}
	return nil
}
