package rest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-admin/internal/auth"
	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

const (
	flashCookie = "flash"
	flashMaxAge = time.Hour

	flowLogin     = "login"
	flowDashboard = "dashboard"
	flowNews      = "news"

	// maxFlowAlerts keeps the signed cookie well under the browser limit.
	maxFlowAlerts = 5
)

// flashClaims carries pending alerts per page flow. It is signed with the
// session key.
type flashClaims struct {
	Alerts map[string][]newsportal.Alert `json:"alerts"`
	jwt.RegisteredClaims
}

func (h *Handler) readFlash(c echo.Context) *flashClaims {
	claims := &flashClaims{}
	if cookie, err := c.Cookie(flashCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Decode(cookie.Value, claims); err != nil {
			h.log.Warn("dropping invalid flash cookie", "error", err)
			claims = &flashClaims{}
		}
	}
	if claims.Alerts == nil {
		claims.Alerts = make(map[string][]newsportal.Alert)
	}

	return claims
}

func (h *Handler) writeFlash(c echo.Context, claims *flashClaims) error {
	if len(claims.Alerts) == 0 {
		auth.SetCookie(c.Response(), c.Request(), flashCookie, "", -1)
		return nil
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(flashMaxAge))
	value, err := h.sessions.Encode(claims)
	if err != nil {
		return err
	}

	auth.SetCookie(c.Response(), c.Request(), flashCookie, value, int(flashMaxAge.Seconds()))

	return nil
}

// pushAlert queues alert for the next render of flow. Only the newest
// maxFlowAlerts alerts of a flow are kept.
func (h *Handler) pushAlert(c echo.Context, flow string, alert newsportal.Alert) error {
	claims := h.readFlash(c)
	alerts := append(claims.Alerts[flow], alert)
	if len(alerts) > maxFlowAlerts {
		alerts = alerts[len(alerts)-maxFlowAlerts:]
	}
	claims.Alerts[flow] = alerts

	return h.writeFlash(c, claims)
}

// drainAlerts returns the pending alerts of flow and forgets them. Alerts of
// other flows stay queued.
func (h *Handler) drainAlerts(c echo.Context, flow string) []Alert {
	claims := h.readFlash(c)
	alerts, ok := claims.Alerts[flow]
	if !ok {
		return nil
	}

	delete(claims.Alerts, flow)
	if err := h.writeFlash(c, claims); err != nil {
		h.log.Error("failed to write flash cookie", "error", err)
	}

	return NewAlerts(alerts)
}
