package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/daniilsolovey/news-admin/internal/assets"
	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/newsportal"
	"github.com/daniilsolovey/news-admin/internal/render"
)

const (
	homeNewsCount = 3

	newsPath  = "/news"
	adminPath = "/admin"

	alertNewsCreated = "News item created."
	alertNewsDeleted = "News item deleted."
	deleteOK         = "okay"
)

// ErrUploadMissing is returned when an upload request carries no image.
var ErrUploadMissing = errors.New("no image uploaded")

type Handler struct {
	news     *newsportal.Manager
	assets   *assets.Store
	sessions *auth.Sessions
	log      *slog.Logger
	// policy sanitizes stored bodies when set.
	policy *bluemonday.Policy
}

func NewHandler(news *newsportal.Manager, store *assets.Store, sessions *auth.Sessions, log *slog.Logger, sanitize bool) *Handler {
	h := &Handler{
		news:     news,
		assets:   store,
		sessions: sessions,
		log:      log,
	}
	if sanitize {
		h.policy = bluemonday.UGCPolicy()
	}

	return h
}

func (h *Handler) page(c echo.Context, title string, data any) render.Page {
	return render.Page{
		Title:    title,
		Username: username(c),
		Data:     data,
	}
}

func (h *Handler) sanitize(body string) string {
	if h.policy == nil {
		return body
	}
	return h.policy.Sanitize(body)
}

func (h *Handler) redirectToNews(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, newsPath)
}

func newsID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Home handles GET /
func (h *Handler) Home(c echo.Context) error {
	news, err := h.news.News(c.Request().Context(), homeNewsCount, false)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index", h.page(c, "", homePage{News: NewNewsList(news)}))
}

// NewsList handles GET /news
func (h *Handler) NewsList(c echo.Context) error {
	var filter NewsFilter
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request parameters").SetInternal(err)
	}

	news, err := h.news.News(c.Request().Context(), max(filter.Limit, 0), false)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "news", h.page(c, "", newsPage{
		News:     NewNewsList(news),
		LoggedIn: username(c) != "",
		Alerts:   h.drainAlerts(c, flowNews),
	}))
}

// NewsItem handles GET /news/:id
func (h *Handler) NewsItem(c echo.Context) error {
	id, ok := newsID(c)
	if !ok {
		return h.redirectToNews(c)
	}

	news, err := h.news.NewsByID(c.Request().Context(), id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return h.redirectToNews(c)
	} else if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "news_item", h.page(c, news.Title, newsItemPage{
		News:     NewNews(*news),
		LoggedIn: username(c) != "",
	}))
}

// CreateNews handles PUT /news and answers with the path of the new item.
func (h *Handler) CreateNews(c echo.Context) error {
	id, err := h.news.CreateNews(c.Request().Context(),
		c.FormValue("title"),
		h.sanitize(c.FormValue("body")),
		c.FormValue("correlationId"),
	)
	if err != nil {
		return err
	}

	if err := h.pushAlert(c, flowNews, newsportal.Alert{Severity: newsportal.SeveritySuccess, Message: alertNewsCreated}); err != nil {
		h.log.Error("failed to queue alert", "error", err)
	}

	return c.String(http.StatusOK, newsportal.PathFor(id))
}

// ReplaceNews handles PUT /news/:id
func (h *Handler) ReplaceNews(c echo.Context) error {
	id, ok := newsID(c)
	if !ok {
		return h.redirectToNews(c)
	}

	err := h.news.ReplaceNews(c.Request().Context(), id, c.FormValue("title"), h.sanitize(c.FormValue("body")))
	if errors.Is(err, newsportal.ErrNotFound) {
		return h.redirectToNews(c)
	} else if err != nil {
		return err
	}

	return c.String(http.StatusOK, newsportal.PathFor(id))
}

// DeleteNews handles DELETE /news/:id
func (h *Handler) DeleteNews(c echo.Context) error {
	id, ok := newsID(c)
	if !ok {
		return h.redirectToNews(c)
	}

	err := h.news.DeleteNews(c.Request().Context(), id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return h.redirectToNews(c)
	} else if err != nil {
		return err
	}

	if err := h.pushAlert(c, flowNews, newsportal.Alert{Severity: newsportal.SeverityInfo, Message: alertNewsDeleted}); err != nil {
		h.log.Error("failed to queue alert", "error", err)
	}

	return c.String(http.StatusOK, deleteOK)
}

// UploadImage handles POST /upload-image and answers with the public URL of
// the stored file.
func (h *Handler) UploadImage(c echo.Context) error {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return ErrUploadMissing
	} else if err != nil {
		return err
	}

	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := h.assets.Save(c.FormValue("correlationId"), header.Filename, src)
	if err != nil {
		return err
	}

	h.log.Info("image uploaded", "url", url, "size", header.Size)

	return c.String(http.StatusOK, url)
}

// Editor handles GET /editor with a blank form.
func (h *Handler) Editor(c echo.Context) error {
	return c.Render(http.StatusOK, "editor", editorPage{CorrelationID: assets.NewCorrelationID()})
}

// EditorByID handles GET /editor/:id
func (h *Handler) EditorByID(c echo.Context) error {
	id, ok := newsID(c)
	if !ok {
		return h.redirectToNews(c)
	}

	news, err := h.news.NewsByID(c.Request().Context(), id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return h.redirectToNews(c)
	} else if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "editor", newEditorPage(news))
}

// StaticPage renders a section without data.
func (h *Handler) StaticPage(section string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, section, h.page(c, "", nil))
	}
}
