package newsportal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daniilsolovey/news-admin/internal/assets"
	"github.com/daniilsolovey/news-admin/internal/db"
)

// Repository is the storage used by Manager. *db.Repository implements it.
type Repository interface {
	NewsList(ctx context.Context, limit int, includeBody bool) ([]db.News, error)
	NewsByID(ctx context.Context, newsID int) (*db.News, error)
	CreateNews(ctx context.Context, news *db.News) error
	ReplaceNews(ctx context.Context, newsID int, title, body string) (bool, error)
	SoftDeleteNews(ctx context.Context, newsID int) (string, bool, error)
	AdminByUsername(ctx context.Context, username string) (*db.Admin, error)
	UpdateAdminPassword(ctx context.Context, username, hash string) error
}

// AssetPurger removes the uploaded assets of a news item.
type AssetPurger interface {
	Purge(correlationID string) error
}

// Credentials hashes and verifies passwords.
type Credentials interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type Manager struct {
	db          Repository
	assets      AssetPurger
	credentials Credentials
	log         *slog.Logger
}

func NewManager(repo Repository, assets AssetPurger, credentials Credentials, log *slog.Logger) *Manager {
	return &Manager{
		db:          repo,
		assets:      assets,
		credentials: credentials,
		log:         log,
	}
}

// News returns live news, newest first. limit <= 0 returns all of them.
func (m *Manager) News(ctx context.Context, limit int, includeBody bool) ([]News, error) {
	list, err := m.db.NewsList(ctx, limit, includeBody)
	if err != nil {
		return nil, fmt.Errorf("db get news: %w", err)
	}

	return NewNewsList(list), nil
}

func (m *Manager) NewsByID(ctx context.Context, newsID int) (*News, error) {
	dbNews, err := m.db.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if dbNews == nil {
		return nil, ErrNotFound
	}

	news := NewNews(dbNews)
	return &news, nil
}

// CreateNews stores a new item and returns its id.
func (m *Manager) CreateNews(ctx context.Context, title, body, correlationID string) (int, error) {
	if err := validateNews(title, body); err != nil {
		return 0, err
	}
	if !assets.ValidCorrelationID(correlationID) {
		return 0, fmt.Errorf("%w: invalid correlation id %q", ErrValidation, correlationID)
	}

	news := &db.News{Title: title, Body: body, UUID: correlationID}
	if err := m.db.CreateNews(ctx, news); err != nil {
		return 0, fmt.Errorf("db create news: %w", err)
	}

	m.log.Info("news created", "newsID", news.ID, "correlationID", correlationID)

	return news.ID, nil
}

// ReplaceNews overwrites title and body of a live item.
func (m *Manager) ReplaceNews(ctx context.Context, newsID int, title, body string) error {
	if err := validateNews(title, body); err != nil {
		return err
	}

	ok, err := m.db.ReplaceNews(ctx, newsID, title, body)
	if err != nil {
		return fmt.Errorf("db replace news: %w", err)
	} else if !ok {
		return ErrNotFound
	}

	m.log.Info("news replaced", "newsID", newsID)

	return nil
}

// DeleteNews soft-deletes a live item and removes its uploaded assets.
func (m *Manager) DeleteNews(ctx context.Context, newsID int) error {
	correlationID, ok, err := m.db.SoftDeleteNews(ctx, newsID)
	if err != nil {
		return fmt.Errorf("db delete news: %w", err)
	} else if !ok {
		return ErrNotFound
	}

	if err := m.assets.Purge(correlationID); err != nil {
		return fmt.Errorf("purge assets of news %d: %w", newsID, err)
	}

	m.log.Info("news deleted", "newsID", newsID, "correlationID", correlationID)

	return nil
}

func validateNews(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}

	return nil
}
