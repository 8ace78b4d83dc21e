package identity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.db")
	db, err := client.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, _ := openDB(t)
	return NewStore(context.Background(), db, logging.Nop())
}

func TestStore_EmptyOnFirstStart(t *testing.T) {
	s := newStore(t)

	_, ok := s.CurrentUserID()
	assert.False(t, ok)
	assert.Equal(t, models.Identity{}, s.Identity())
	assert.Empty(t, s.Token())
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", "a@b.co", "tok"))

	assert.Equal(t, models.Identity{
		UserID:    models.Some("u1"),
		Email:     models.Some("a@b.co"),
		AuthToken: models.Some("tok"),
	}, s.Identity())
}

func TestStore_EmptyTokenKeepsPrevious(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", "a@b.co", "tok"))
	require.NoError(t, s.Save(ctx, "u2", "c@d.co", ""))

	assert.Equal(t, models.Some("u2"), s.UserID().Get())
	assert.Equal(t, models.Some("c@d.co"), s.Email().Get())
	assert.Equal(t, models.Some("tok"), s.AuthToken().Get())

	require.NoError(t, s.SetToken(ctx, ""))
	assert.Equal(t, "tok", s.Token())

	require.NoError(t, s.SetToken(ctx, "tok2"))
	assert.Equal(t, "tok2", s.Token())
}

func TestStore_SaveWithoutTokenLeavesTokenAbsent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(context.Background(), "u1", "a@b.co", ""))
	assert.False(t, s.AuthToken().Get().Present)
}

func TestStore_ClearMakesEverythingAbsent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u1", "a@b.co", "tok"))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, models.Identity{}, s.Identity())
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()

	require.NoError(t, NewStore(ctx, db, logging.Nop()).Save(ctx, "u1", "a@b.co", "tok"))

	again := NewStore(ctx, db, logging.Nop())
	id, ok := again.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
	assert.Equal(t, "tok", again.Token())
}

func TestStore_ObserversSeeSaveAndClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var seen []models.Optional[string]
	cancel := s.UserID().Subscribe(func(v models.Optional[string]) { seen = append(seen, v) })
	defer cancel()

	require.NoError(t, s.Save(ctx, "u1", "a@b.co", ""))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, []models.Optional[string]{
		models.None[string](),
		models.Some("u1"),
		models.None[string](),
	}, seen)
}

func TestStore_FailedSaveLeavesObservablesUntouched(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Save(ctx, "u1", "a@b.co", "tok"))
	assert.Equal(t, models.Identity{}, s.Identity())
}

func TestStore_TokenExpiry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, ok := s.TokenExpiry()
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, s.SetToken(ctx, tok))
	got, ok := s.TokenExpiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	require.NoError(t, s.SetToken(ctx, "not-a-jwt"))
	_, ok = s.TokenExpiry()
	assert.False(t, ok)
}

func TestStore_UserIDObserverSeesMatchingSnapshot(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "u1", "old@b.co", "t1"))

	type pair struct{ id, email, token string }
	var seen []pair
	cancel := s.UserID().Subscribe(func(v models.Optional[string]) {
		seen = append(seen, pair{
			id:    v.OrElse(""),
			email: s.Email().Get().OrElse(""),
			token: s.Identity().AuthToken.OrElse(""),
		})
	})
	defer cancel()

	require.NoError(t, s.Save(ctx, "u2", "new@b.co", "t2"))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, []pair{
		{id: "u1", email: "old@b.co", token: "t1"},
		{id: "u2", email: "new@b.co", token: "t2"},
		{},
	}, seen)
}

func TestStore_CurrentPublishesOneValuePerWrite(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var seen []models.Identity
	cancel := s.Current().Subscribe(func(id models.Identity) { seen = append(seen, id) })
	defer cancel()

	require.NoError(t, s.Save(ctx, "u1", "a@b.co", ""))
	require.NoError(t, s.SetToken(ctx, "tok"))

	require.Len(t, seen, 3)
	assert.Equal(t, models.Identity{}, seen[0])
	assert.Equal(t, models.Identity{UserID: models.Some("u1"), Email: models.Some("a@b.co")}, seen[1])
	assert.Equal(t, models.Some("tok"), seen[2].AuthToken)
	assert.Equal(t, models.Some("u1"), seen[2].UserID)
}

func TestStore_SetTokenDoesNotNotifyUserID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "u1", "a@b.co", ""))

	calls := 0
	cancel := s.UserID().Subscribe(func(models.Optional[string]) { calls++ })
	defer cancel()

	require.NoError(t, s.SetToken(ctx, "tok"))
	assert.Equal(t, 1, calls)
}
