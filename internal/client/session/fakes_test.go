package session

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/identity"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/gateway"
	"github.com/dmitrijs2005/kotoba/internal/gateway/config"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuth implements services.AuthService. When gate is set, Login and
// Register signal entered and wait for gate to close.
type fakeAuth struct {
	mu    sync.Mutex
	calls int

	data models.AuthData
	msg  string
	err  error

	entered chan struct{}
	gate    chan struct{}

	lastEmail string
	lastHash  string
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) record(email, hash string) {
	f.mu.Lock()
	f.calls++
	f.lastEmail, f.lastHash = email, hash
	f.mu.Unlock()

	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}
}

func (f *fakeAuth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAuth) Login(ctx context.Context, email, passwordHash string) (models.AuthData, error) {
	f.record(email, passwordHash)
	return f.data, f.err
}

func (f *fakeAuth) Register(ctx context.Context, name, email, passwordHash string) (models.AuthData, error) {
	f.record(email, passwordHash)
	return f.data, f.err
}

func (f *fakeAuth) SendOTP(ctx context.Context, email string) (string, error) {
	f.record(email, "")
	return f.msg, f.err
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	f.record(email, "")
	return f.msg, f.err
}

func (f *fakeAuth) ChangePassword(ctx context.Context, email, newPasswordHash string) (string, error) {
	f.record(email, newPasswordHash)
	return f.msg, f.err
}

func (f *fakeAuth) Ping(ctx context.Context) error { return nil }

// brokenStore fails every write.
type brokenStore struct{}

func (brokenStore) Save(context.Context, string, string, string) error {
	return errors.New("disk full")
}

func (brokenStore) Clear(context.Context) error { return errors.New("disk full") }

func (brokenStore) Identity() models.Identity { return models.Identity{} }

type env struct {
	db       *sqlx.DB
	identity *identity.Store
	users    *services.UserService
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return env{
		db:       db,
		identity: identity.NewStore(ctx, db, logging.Nop()),
		users:    services.NewUserService(db, nil),
	}
}

func (e env) deps(auth services.AuthService) Deps {
	return Deps{Auth: auth, Identity: e.identity, Users: e.users, Log: logging.Nop()}
}

// gatewayAuth starts the development gateway and returns an AuthService
// that sends the token held by store.
func gatewayAuth(t *testing.T, store *identity.Store) services.AuthService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"GATEWAY_OTP_CODE": "1234",
	}))
	require.NoError(t, err)

	srv := httptest.NewServer(gateway.NewApp(cfg, zap.NewNop()).Router())
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL, 5*time.Second, store.Token)
	require.NoError(t, err)
	return services.NewAuthService(c)
}

// record collects every state published by v.
func record[T any](t *testing.T, subscribe func(func(T)) func()) *[]T {
	var got []T
	cancel := subscribe(func(s T) { got = append(got, s) })
	t.Cleanup(cancel)
	return &got
}
