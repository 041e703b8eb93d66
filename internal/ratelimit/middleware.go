package ratelimit

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "authbase/internal/errors"
)

// Middleware enforces the budget before any handler logic runs, keyed by
// client IP. A store failure is logged and the request let through; the
// limiter protects capacity, it is not an authentication control.
func Middleware(limiter *Limiter, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn("rate limiter store unavailable", zap.Error(err))
				return next(c)
			}
			if !ok {
				return apperrors.ErrTooManyRequests
			}
			return next(c)
		}
	}
}
