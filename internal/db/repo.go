package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
)

var (
	summaryColumns = []string{Columns.News.ID, Columns.News.Title, Columns.News.Created, Columns.News.UUID}
	fullColumns    = append(append([]string{}, summaryColumns...), Columns.News.Body)
)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// NewsList returns live news sorted by created DESC. limit <= 0 means no
// limit. Body is left empty unless includeBody is set.
func (r *Repository) NewsList(ctx context.Context, limit int, includeBody bool) ([]News, error) {
	columns := summaryColumns
	if includeBody {
		columns = fullColumns
	}

	var news []News
	query := r.conn(ctx).ModelContext(ctx, &news).
		Column(columns...).
		Where(`"t"."is_deleted" = ?`, false).
		OrderExpr(`"t"."created" DESC, "t"."id" DESC`)

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Select(); err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	return news, nil
}

// NewsByID returns a live news item or nil if there is none.
func (r *Repository) NewsByID(ctx context.Context, newsID int) (*News, error) {
	news := &News{}
	err := r.conn(ctx).ModelContext(ctx, news).
		Column(fullColumns...).
		Where(`"t"."id" = ?`, newsID).
		Where(`"t"."is_deleted" = ?`, false).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

// CreateNews inserts news and sets its generated ID. Created is set to now
// when zero.
func (r *Repository) CreateNews(ctx context.Context, news *News) error {
	if news.Created.IsZero() {
		news.Created = time.Now()
	}
	news.IsDeleted = false

	_, err := r.conn(ctx).ModelContext(ctx, news).
		Returning(`"id"`).
		Insert()
	if err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	return nil
}

// ReplaceNews overwrites title and body of a live news item. It reports false
// when no live item has the given id.
func (r *Repository) ReplaceNews(ctx context.Context, newsID int, title, body string) (bool, error) {
	res, err := r.conn(ctx).ModelContext(ctx, &News{Title: title, Body: body}).
		Column(Columns.News.Title, Columns.News.Body).
		Where(`"t"."id" = ?`, newsID).
		Where(`"t"."is_deleted" = ?`, false).
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to update news: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// SoftDeleteNews flags a live news item as deleted and returns its
// correlation id. It reports false when no live item has the given id.
func (r *Repository) SoftDeleteNews(ctx context.Context, newsID int) (string, bool, error) {
	news := &News{}
	res, err := r.conn(ctx).ModelContext(ctx, news).
		Set(`"is_deleted" = ?`, true).
		Where(`"t"."id" = ?`, newsID).
		Where(`"t"."is_deleted" = ?`, false).
		Returning(`"uuid"`).
		Update()

	if errors.Is(err, pg.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to soft delete news: %w", err)
	}

	if res.RowsAffected() == 0 {
		return "", false, nil
	}

	return news.UUID, true, nil
}

// AdminByUsername looks the account up case-insensitively. It returns nil if
// there is no such account.
func (r *Repository) AdminByUsername(ctx context.Context, username string) (*Admin, error) {
	admin := &Admin{}
	err := r.conn(ctx).ModelContext(ctx, admin).
		Where(`lower("t"."username") = ?`, strings.ToLower(username)).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return admin, nil
}

func (r *Repository) UpdateAdminPassword(ctx context.Context, username, hash string) error {
	res, err := r.conn(ctx).ModelContext(ctx, (*Admin)(nil)).
		Set(`"password" = ?`, hash).
		Where(`lower("t"."username") = ?`, strings.ToLower(username)).
		Update()
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	if res.RowsAffected() == 0 {
		return fmt.Errorf("failed to update admin password: no admin %q", username)
	}

	return nil
}

// SaveAdmin creates the account or resets its password.
func (r *Repository) SaveAdmin(ctx context.Context, username, hash string) error {
	admin := &Admin{Username: strings.ToLower(username), Password: hash}
	_, err := r.conn(ctx).ModelContext(ctx, admin).
		OnConflict(`(lower("username")) DO UPDATE`).
		Set(`"password" = EXCLUDED."password"`).
		Insert()
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}

	return nil
}
