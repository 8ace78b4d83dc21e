package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/kotoba/internal/client/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// DSN builds the SQLite connection string for path. Foreign keys are enabled
// per connection so progress rows cascade with their user.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the local database at path and
// brings its schema up to date.
func InitDatabase(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db.DB); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
