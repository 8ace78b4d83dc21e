package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/config"
	"github.com/dmitrijs2005/kotoba/internal/client/identity"
	"github.com/dmitrijs2005/kotoba/internal/client/profile"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/session"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/jmoiron/sqlx"
)

var errNotSignedIn = errors.New("not signed in, run 'kotoba login' first")

// App holds the client components for one command invocation.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sqlx.DB

	identity *identity.Store
	users    *services.UserService
	progress *services.ProgressService

	auth       services.AuthService
	profiles   services.ProfileService
	vocabulary services.VocabularyService
	grammar    services.GrammarService
	reading    services.ReadingService
	chat       services.ChatService
}

// NewApp opens the local database at cfg.DBPath and connects the services
// to cfg.ServerURL.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DBPath, "error", err)
		return nil, err
	}

	store := identity.NewStore(ctx, db, log)

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, store.Token)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	chat := client.NewChatClient(cfg.ServerURL, cfg.RequestTimeout, store.Token)
	progress := services.NewProgressService(db, log)

	return &App{
		config:     cfg,
		log:        log,
		db:         db,
		identity:   store,
		users:      services.NewUserService(db, progress.Changes()),
		progress:   progress,
		auth:       services.NewAuthService(api),
		profiles:   services.NewProfileService(api),
		vocabulary: services.NewVocabularyService(api),
		grammar:    services.NewGrammarService(api),
		reading:    services.NewReadingService(api),
		chat:       services.NewChatService(chat, cfg.ChatModel),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) deps() session.Deps {
	return session.Deps{Auth: a.auth, Identity: a.identity, Users: a.users, Log: a.log}
}

func (a *App) profileController() *profile.Controller {
	return profile.NewController(a.profiles, a.identity, a.log)
}

// requireUser returns the signed-in user id.
func (a *App) requireUser() (string, error) {
	id, ok := a.identity.CurrentUserID()
	if !ok {
		return "", errNotSignedIn
	}
	return id, nil
}
