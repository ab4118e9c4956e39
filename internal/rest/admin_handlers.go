package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

// Admin handles GET /admin: the sign-in page without a session, the
// dashboard otherwise.
func (h *Handler) Admin(c echo.Context) error {
	name := username(c)
	if name == "" {
		return c.Render(http.StatusOK, "signin", signinPage{Alerts: h.drainAlerts(c, flowLogin)})
	}

	news, err := h.news.News(c.Request().Context(), 0, false)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "admin", h.page(c, "", adminPage{
		Username: name,
		News:     NewNewsList(news),
		Alerts:   h.drainAlerts(c, flowDashboard),
	}))
}

// Login handles POST /admin
func (h *Handler) Login(c echo.Context) error {
	if name := username(c); name != "" {
		if err := h.pushAlert(c, flowDashboard, newsportal.AlreadyLoggedIn(name)); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, adminPath)
	}

	res, err := h.news.Login(c.Request().Context(), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return err
	}

	if res.OK() {
		err = h.sessions.Start(c.Response(), c.Request(), res.Username)
	} else {
		err = h.pushAlert(c, flowLogin, *res.Alert)
	}
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, adminPath)
}

// ChangePassword handles POST /change-password
func (h *Handler) ChangePassword(c echo.Context) error {
	alert, err := h.news.ChangePassword(c.Request().Context(), username(c),
		c.FormValue("password"),
		c.FormValue("new_password"),
		c.FormValue("confirm_new_password"),
	)
	if err != nil {
		return err
	}

	if err := h.pushAlert(c, flowDashboard, alert); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, adminPath)
}

// Logout handles GET /logout
func (h *Handler) Logout(c echo.Context) error {
	h.sessions.Clear(c.Response(), c.Request())
	return c.Redirect(http.StatusSeeOther, "/")
}
