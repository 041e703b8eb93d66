package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"authbase/internal/config"
)

// Cookie names the tokens travel under.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

const cookiePath = "/api/v1"

func newAuthCookie(cfg *config.Config, name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cookiePath,
		Domain:   cfg.CookieDomain(),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   !cfg.IsDevelopment(),
	}
}

func setAccessCookie(c echo.Context, cfg *config.Config, token string) {
	c.SetCookie(newAuthCookie(cfg, AccessTokenCookie, token, config.AccessTokenTTL))
}

func setRefreshCookie(c echo.Context, cfg *config.Config, token string) {
	c.SetCookie(newAuthCookie(cfg, RefreshTokenCookie, token, config.RefreshTokenTTL))
}

func clearAuthCookies(c echo.Context, cfg *config.Config) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		cleared := newAuthCookie(cfg, name, "", 0)
		cleared.MaxAge = -1
		c.SetCookie(cleared)
	}
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
