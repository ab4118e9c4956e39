package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/news-admin/internal/assets"
	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/db"
	"github.com/daniilsolovey/news-admin/internal/newsportal"
	"github.com/daniilsolovey/news-admin/internal/render"
)

var testTemplates = fstest.MapFS{
	"skeleton/skeleton.html": {Data: []byte(
		`<title>{{.Title}}</title>{{if .Username}}<span class="user">{{.Username}}</span>{{end}}<main>{{.Content}}</main>`)},
	"index.html": {Data: []byte(
		`{{range .News}}<li class="home"><a href="{{.Path}}">{{.Title}}</a></li>{{end}}`)},
	"news/index.html": {Data: []byte(
		`{{range .Alerts}}<div class="alert alert-{{.Severity}}">{{.Message}}</div>{{end}}` +
			`{{range .News}}<li><a href="{{.Path}}">{{.Title}}</a> {{date .Created}}</li>{{end}}` +
			`{{if .LoggedIn}}<a href="/editor">new</a>{{end}}`)},
	"news_item/index.html": {Data: []byte(
		`<h1>{{.News.Title}}</h1><article>{{.News.Body}}</article><time>{{datetime .News.Created}}</time>`)},
	"admin/index.html": {Data: []byte(
		`<h1 id="dashboard">{{.Username}}</h1>` +
			`{{range .Alerts}}<div class="alert alert-{{.Severity}}">{{.Message}}</div>{{end}}` +
			`{{range .News}}<li>{{.Title}}</li>{{end}}`)},
	"signin/index.html": {Data: []byte(
		`<form id="signin">{{range .Alerts}}<div class="alert alert-{{.Severity}}">{{.Message}}</div>{{end}}</form>`)},
	"editor/index.html": {Data: []byte(
		`<script>var editorState = { id: {{.ID}}, title: {{.Title}}, body: {{.Body}}, correlationId: {{.CorrelationID}} };</script>`)},
	"about/mission/index.html": {Data: []byte(`<p>Our mission</p>`)},
	"about/contact/index.html": {Data: []byte(`<p>Contact us</p>`)},
}

// noOpLogger creates a logger that discards all output for tests
func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// memoryRepo is an in-memory newsportal.Repository. raw bypasses the
// is_deleted filter.
type memoryRepo struct {
	mu      sync.Mutex
	news    []db.News
	admins  map[string]db.Admin
	clock   time.Time
	updates int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		admins: make(map[string]db.Admin),
		clock:  db.BaseTime,
	}
}

func (r *memoryRepo) NewsList(_ context.Context, limit int, includeBody bool) ([]db.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

	r.clock = r.clock.Add(time.Hour)
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

func (r *memoryRepo) raw(newsID int) (db.News, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.news {
		if n.ID == newsID {
			return n, true
		}
	}
	return db.News{}, false
}

// testEnv drives the router like a browser with a cookie jar.
type testEnv struct {
	e         *echo.Echo
	repo      *memoryRepo
	assetsDir string
	cookies   map[string]*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newMemoryRepo()
	passwords := auth.NewPasswords(bcrypt.MinCost)
	hash, err := passwords.Hash("correct")
	require.NoError(t, err)
	repo.admins["alice"] = db.Admin{ID: 1, Username: "alice", Password: hash}

	dir := t.TempDir()
	logger := noOpLogger()
	store := assets.NewStore(dir, logger)
	manager := newsportal.NewManager(repo, store, passwords, logger)
	sessions := auth.NewSessions([]byte("test-secret"), time.Hour)

	renderer, err := render.New(testTemplates, assets.Manifest{})
	require.NoError(t, err)

	h := NewHandler(manager, store, sessions, logger, false)
	e := h.RegisterRoutes(RouterConfig{
		Renderer:  renderer,
		AssetsDir: dir,
		Debug:     true,
	})

	return &testEnv{
		e:         e,
		repo:      repo,
		assetsDir: dir,
		cookies:   make(map[string]*http.Cookie),
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range env.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(env.cookies, c.Name)
			continue
		}
		env.cookies[c.Name] = c
	}

	return rec
}

func (env *testEnv) get(path string) *httptest.ResponseRecorder {
	return env.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (env *testEnv) form(method, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return env.do(req)
}

func (env *testEnv) login(t *testing.T) {
	t.Helper()
	rec := env.form(http.MethodPost, "/admin", url.Values{"username": {"alice"}, "password": {"correct"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, env.cookies, auth.SessionCookie)
}

func (env *testEnv) seed(t *testing.T, titles ...string) []int {
	t.Helper()
	ids := make([]int, len(titles))
	for i, title := range titles {
		n := &db.News{Title: title, Body: "<p>" + title + "</p>", UUID: "seed" + strconv.Itoa(len(env.repo.news)+1)}
		require.NoError(t, env.repo.CreateNews(context.Background(), n))
		ids[i] = n.ID
	}
	return ids
}
