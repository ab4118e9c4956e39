package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-admin/config"
	"github.com/daniilsolovey/news-admin/internal/assets"
	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/db"
	"github.com/daniilsolovey/news-admin/internal/newsportal"
	"github.com/daniilsolovey/news-admin/internal/render"
	"github.com/daniilsolovey/news-admin/internal/rest"
	"github.com/daniilsolovey/news-admin/internal/rpc"
)

type App struct {
	DB     *db.Repository
	Logger *slog.Logger
	Echo   *echo.Echo
	Config config.Config
}

// New wires the site. secret signs sessions and flash cookies.
func New(cfg config.Config, dbConnect *pg.DB, secret []byte, logger *slog.Logger) (*App, error) {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger))
		logger.Info("SQL query logging enabled")
	}

	ttl, err := cfg.App.SessionTTL()
	if err != nil {
		return nil, err
	}

	database := db.New(dbConnect)
	store := assets.NewStore(cfg.App.Assets, logger)
	manager := newsportal.NewManager(database, store, auth.NewPasswords(cfg.App.BcryptCost), logger)

	renderer, err := render.New(os.DirFS(cfg.App.Templates), assets.Manifest{})
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	manifest, err := assets.BuildManifest(os.DirFS(cfg.App.Assets), renderer.Sections())
	if err != nil {
		return nil, fmt.Errorf("build asset manifest: %w", err)
	}
	renderer.SetManifest(manifest)

	handler := rest.NewHandler(manager, store, auth.NewSessions(secret, ttl), logger, cfg.App.SanitizeBody)

	return &App{
		DB:     database,
		Logger: logger,
		Echo: handler.RegisterRoutes(rest.RouterConfig{
			Renderer:  renderer,
			AssetsDir: cfg.App.Assets,
			Pool:      dbConnect,
			RPC:       rpc.New(logger, manager),
			Debug:     !cfg.App.Production,
			Minify:    cfg.App.Production,
			BodyLimit: cfg.App.MaxUploadSize,
		}),
		Config: cfg,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	addr := a.Config.App.Addr()
	a.Logger.InfoContext(ctx, "service starting", "addr", addr, "production", a.Config.App.Production)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if errClose := a.DB.Close(); errClose != nil {
		err = errors.Join(err, errClose)
	}

	return err
}
