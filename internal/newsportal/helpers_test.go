package newsportal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/db"
)

// noOpLogger creates a logger that discards all output for tests
func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// memoryRepo is an in-memory Repository with the same visibility rules as
// the postgres one.
type memoryRepo struct {
	mu     sync.Mutex
	news   []db.News
	admins map[string]db.Admin
	clock  time.Time

	updates int
	err     error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		admins: make(map[string]db.Admin),
		clock:  time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepo) NewsList(_ context.Context, limit int, includeBody bool) ([]db.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var list []db.News
	for _, n := range r.news {
		if n.IsDeleted {
			continue
		}
		if !includeBody {
			n.Body = ""
		}
		list = append(list, n)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Created.Equal(list[j].Created) {
			return list[i].ID > list[j].ID
		}
		return list[i].Created.After(list[j].Created)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *memoryRepo) NewsByID(_ context.Context, newsID int) (*db.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	for _, n := range r.news {
		if n.ID == newsID && !n.IsDeleted {
			return &n, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) CreateNews(_ context.Context, news *db.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}

	r.clock = r.clock.Add(time.Minute)
	news.ID = len(r.news) + 1
	news.Created = r.clock
	r.news = append(r.news, *news)
	return nil
}

func (r *memoryRepo) ReplaceNews(_ context.Context, newsID int, title, body string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.news {
		if r.news[i].ID == newsID && !r.news[i].IsDeleted {
			r.news[i].Title, r.news[i].Body = title, body
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) SoftDeleteNews(_ context.Context, newsID int) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.news {
		if r.news[i].ID == newsID && !r.news[i].IsDeleted {
			r.news[i].IsDeleted = true
			return r.news[i].UUID, true, nil
		}
	}
	return "", false, nil
}

func (r *memoryRepo) AdminByUsername(_ context.Context, username string) (*db.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	admin, ok := r.admins[strings.ToLower(username)]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (r *memoryRepo) UpdateAdminPassword(_ context.Context, username, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[strings.ToLower(username)]
	if !ok {
		return errors.New("no such admin")
	}
	admin.Password = hash
	r.admins[admin.Username] = admin
	r.updates++
	return nil
}

func (r *memoryRepo) addAdmin(username, hash string) {
	r.admins[username] = db.Admin{ID: len(r.admins) + 1, Username: username, Password: hash}
}

// purgeRecorder records purged correlation ids.
type purgeRecorder struct {
	purged []string
	err    error
}

func (p *purgeRecorder) Purge(correlationID string) error {
	p.purged = append(p.purged, correlationID)
	return p.err
}

func newTestManager() (*Manager, *memoryRepo, *purgeRecorder) {
	repo := newMemoryRepo()
	purger := &purgeRecorder{}
	return NewManager(repo, purger, auth.NewPasswords(bcrypt.MinCost), noOpLogger()), repo, purger
}
