//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/go-pg/pg/v10"
)

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}

// rawNews reads a row without the is_deleted filter.
func rawNews(t *testing.T, tx *pg.Tx, id int) News {
	t.Helper()

	var news News
	if err := tx.Model(&news).Where(`"t"."id" = ?`, id).Select(); err != nil {
		t.Fatalf("failed to read raw news %d: %v", id, err)
	}
	return news
}

func assertNewsSortedByCreated(t *testing.T, news []News) {
	t.Helper()
	for i := 1; i < len(news); i++ {
		if news[i-1].Created.Before(news[i].Created) {
			t.Errorf("news not sorted by created DESC at index %d: %v before %v",
				i, news[i-1].Created, news[i].Created)
		}
	}
}
