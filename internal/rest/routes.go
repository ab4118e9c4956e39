package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/daniilsolovey/news-admin/internal/assets"
	"github.com/daniilsolovey/news-admin/internal/db"
	"github.com/daniilsolovey/news-admin/internal/render"
)

const (
	healthPath = "/health"
	rpcPath    = "/rpc/"

	usernameKey = "username"
)

// RouterConfig holds what the router needs besides the handler itself.
type RouterConfig struct {
	Renderer  echo.Renderer
	AssetsDir string
	// Pool enables a per-request connection scope when set.
	Pool *pg.DB
	RPC  http.Handler

	Debug     bool
	Minify    bool
	BodyLimit string
}

// RegisterRoutes builds the echo server with all routes of the site.
func (h *Handler) RegisterRoutes(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Renderer = cfg.Renderer
	e.HTTPErrorHandler = h.errorHandler(cfg.Debug)

	e.Use(middleware.Recover())
	e.Use(h.requestLogger())
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.Pool != nil {
		e.Use(ConnScope(cfg.Pool, h.log))
	}
	if cfg.Minify {
		e.Use(render.MinifyWithConfig(render.MinifyConfig{Skipper: skipAssets}))
	}
	e.Use(h.withSession)

	e.GET("/", h.Home)
	e.GET("/news", h.NewsList)
	e.GET("/news/:id", h.NewsItem)
	e.PUT("/news", h.CreateNews, h.requireAdmin)
	e.PUT("/news/:id", h.ReplaceNews, h.requireAdmin)
	e.DELETE("/news/:id", h.DeleteNews, h.requireAdmin)
	e.POST("/upload-image", h.UploadImage, h.requireAdmin)

	e.GET("/admin", h.Admin)
	e.POST("/admin", h.Login)
	e.POST("/change-password", h.ChangePassword, h.requireAdmin)
	e.GET("/logout", h.Logout)

	e.GET("/editor", h.Editor)
	e.GET("/editor/:id", h.EditorByID)

	e.GET("/about/mission", h.StaticPage("about/mission"))
	e.GET("/about/contact", h.StaticPage("about/contact"))

	if cfg.AssetsDir != "" {
		e.Static(assets.URLPrefix, cfg.AssetsDir)
	}
	e.GET(healthPath, h.Health)
	if cfg.RPC != nil {
		e.Any(rpcPath, echo.WrapHandler(cfg.RPC))
	}

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// skipAssets matches requests for files under the assets root.
func skipAssets(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, assets.URLPrefix+"/")
}

// ConnScope gives every request its own connection from pool. The connection
// is returned to the pool when the request ends.
func ConnScope(pool *pg.DB, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			conn := pool.Conn()
			defer func() {
				if err := conn.Close(); err != nil {
					log.Error("failed to release connection", "error", err)
				}
			}()

			req := c.Request()
			c.SetRequest(req.WithContext(db.WithConn(req.Context(), conn)))

			return next(c)
		}
	}
}

func (h *Handler) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if username, ok := h.sessions.Username(c.Request()); ok {
			c.Set(usernameKey, username)
		}
		return next(c)
	}
}

// requireAdmin answers 401 with an empty body when there is no session.
func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if username(c) == "" {
			return c.NoContent(http.StatusUnauthorized)
		}
		return next(c)
	}
}

func username(c echo.Context) string {
	name, _ := c.Get(usernameKey).(string)
	return name
}

func (h *Handler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URI,
				"status", v.Status,
				"duration_ms", v.Latency.Milliseconds(),
				"remote_addr", v.RemoteIP,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			if v.Status >= http.StatusInternalServerError {
				h.log.Error("HTTP request", attrs...)
				return nil
			}

			h.log.Info("HTTP request", attrs...)
			return nil
		},
	})
}

// errorHandler answers with a plain-text status line. In debug mode the error
// text is appended.
func (h *Handler) errorHandler(debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		msg := http.StatusText(code)
		if debug {
			msg += ": " + err.Error()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.String(code, msg)
		}
		if err != nil {
			h.log.Error("failed to write error response", "error", err)
		}
	}
}
