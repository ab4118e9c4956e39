// Command setup prepares the database: it applies migrations and creates or
// resets an administrator account.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/news-admin/config"
	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/db"
	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

var (
	flConfig   = flag.String("config", "config.toml", "path to TOML configuration file")
	flDir      = flag.String("dir", "docs/patches", "directory with goose migrations")
	flAdmin    = flag.String("admin", "", "administrator username to create or reset")
	flPassword = flag.String("password", "", "administrator password")
	lg         = slog.New(slog.NewTextHandler(os.Stdout, nil))
)

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load(*flConfig, false)
	exitOnError(err)

	exitOnError(db.RunMigrations(ctx, db.URL(&cfg.Database), *flDir))
	lg.Info("migrations applied", "dir", *flDir)

	if *flAdmin == "" {
		return
	}
	if *flPassword == "" {
		lg.Error("password is required with -admin")
		os.Exit(2)
	}

	hash, err := auth.NewPasswords(cfg.App.BcryptCost).Hash(*flPassword)
	exitOnError(err)

	conn := pg.Connect(&cfg.Database)
	defer conn.Close()

	username := newsportal.NormalizeUsername(*flAdmin)
	exitOnError(db.New(conn).SaveAdmin(ctx, username, hash))
	lg.Info("administrator saved", "username", username)
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("setup failed", "error", err)
		os.Exit(1)
	}
}
