// Package identity keeps the signed-in account (user id, email and bearer
// token) in the local preferences table and exposes each field as an
// observable value.
//
// User id and email are written together or not at all; the token may be set
// on its own, and an empty token never overwrites a stored one.
//
// Every write publishes the whole Identity through Current before the
// per-field values, and the user id after email and token. An observer of
// any field that reads Identity, or a UserID observer that reads the other
// fields, sees the new snapshot.
package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/kotoba/internal/dbx"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/dmitrijs2005/kotoba/internal/observable"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
)

const (
	KeyUserID    = "user_id"
	KeyEmail     = "user_email"
	KeyAuthToken = "auth_token"
)

type field = observable.Value[models.Optional[string]]

// Store is the local preference store for the current identity. It is safe
// for concurrent use.
type Store struct {
	db  *sqlx.DB
	log logging.Logger

	// mu serializes writers so that a Save and a Clear never interleave.
	mu sync.Mutex

	current *observable.Value[models.Identity]
	userID  *field
	email   *field
	token   *field
}

// NewStore loads the persisted identity. A value that cannot be read is
// logged and starts out absent.
func NewStore(ctx context.Context, db *sqlx.DB, log logging.Logger) *Store {
	s := &Store{
		db:      db,
		log:     log,
		current: observable.NewValue(models.Identity{}),
		userID:  observable.NewValue(models.None[string]()),
		email:   observable.NewValue(models.None[string]()),
		token:   observable.NewValue(models.None[string]()),
	}

	prefs, err := preferences.NewSQLiteRepository(db).List(ctx)
	if err != nil {
		log.Error(ctx, "identity load failed", "error", err)
		return s
	}

	var id models.Identity
	for key, f := range map[string]*models.Optional[string]{
		KeyUserID:    &id.UserID,
		KeyEmail:     &id.Email,
		KeyAuthToken: &id.AuthToken,
	} {
		if v, ok := prefs[key]; ok {
			*f = models.Some(v)
		}
	}
	s.publish(id)

	return s
}

// publish sets the snapshot first, then every field that changed, user id
// last. Must be called with mu held or before the Store is shared.
func (s *Store) publish(next models.Identity) {
	prev := s.current.Get()
	s.current.Set(next)

	if next.Email != prev.Email {
		s.email.Set(next.Email)
	}
	if next.AuthToken != prev.AuthToken {
		s.token.Set(next.AuthToken)
	}
	if next.UserID != prev.UserID {
		s.userID.Set(next.UserID)
	}
}

// Current is the observable identity snapshot.
func (s *Store) Current() *observable.Value[models.Identity] { return s.current }

// UserID is the observable user id.
func (s *Store) UserID() *observable.Value[models.Optional[string]] { return s.userID }

// Email is the observable login email.
func (s *Store) Email() *observable.Value[models.Optional[string]] { return s.email }

// AuthToken is the observable bearer token.
func (s *Store) AuthToken() *observable.Value[models.Optional[string]] { return s.token }

// CurrentUserID returns the stored user id, if any.
func (s *Store) CurrentUserID() (string, bool) {
	return s.userID.Get().Get()
}

// Token returns the stored bearer token or "". It matches client.TokenSource.
func (s *Store) Token() string {
	return s.token.Get().OrElse("")
}

// Identity returns a snapshot of all three fields.
func (s *Store) Identity() models.Identity {
	return s.current.Get()
}

// Save stores userID and email, and token when it is not empty, in one
// transaction. Observers are notified after the commit.
func (s *Store) Save(ctx context.Context, userID, email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := preferences.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyUserID, userID); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyEmail, email); err != nil {
			return err
		}
		if token != "" {
			return repo.Set(ctx, KeyAuthToken, token)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	next := s.current.Get()
	next.UserID, next.Email = models.Some(userID), models.Some(email)
	if token != "" {
		next.AuthToken = models.Some(token)
	}
	s.publish(next)
	return nil
}

// SetToken replaces the bearer token. An empty token is ignored.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := preferences.NewSQLiteRepository(s.db).Set(ctx, KeyAuthToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	next := s.current.Get()
	next.AuthToken = models.Some(token)
	s.publish(next)
	return nil
}

// Clear removes the identity. Observers see all three fields absent.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return preferences.NewSQLiteRepository(tx).Delete(ctx, KeyUserID, KeyEmail, KeyAuthToken)
	})
	if err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}

	s.publish(models.Identity{})
	return nil
}

// TokenExpiry reads the exp claim of the stored token without verifying its
// signature; only the gateway can do that. ok is false when there is no
// token or it carries no expiry.
func (s *Store) TokenExpiry() (exp time.Time, ok bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
