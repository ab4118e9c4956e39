package db

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

// URL renders opt as a postgres connection string for drivers that do not
// understand pg.Options.
func URL(opt *pg.Options) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     opt.Addr,
		Path:     "/" + opt.Database,
		RawQuery: "sslmode=disable",
	}
	if opt.TLSConfig != nil {
		u.RawQuery = "sslmode=require"
	}
	if opt.User != "" {
		u.User = url.UserPassword(opt.User, opt.Password)
	}

	return u.String()
}

// RunMigrations applies goose migrations from dir to the database at dbURL.
func RunMigrations(ctx context.Context, dbURL, dir string) error {
	config, err := pgx.ParseConnectionString(dbURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
