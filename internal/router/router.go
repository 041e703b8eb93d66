package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"authbase/internal/auth"
	"authbase/internal/config"
	apperrors "authbase/internal/errors"
	"authbase/internal/handler"
	"authbase/internal/middleware"
	"authbase/internal/ratelimit"
	"authbase/internal/repository"
)

// APIPrefix is the versioned base path for every route except /health.
const APIPrefix = "/api/v1"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	blacklist auth.BlacklistStore,
	limiter *ratelimit.Limiter,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler(cfg, log)

	e.GET("/health", healthHandler.Health)

	api := e.Group(APIPrefix)

	// Unauthenticated-sensitive routes share the fixed-window budget.
	limited := api.Group("", ratelimit.Middleware(limiter, log))
	limited.POST("/auth/register", authHandler.Register)
	limited.PUT("/auth/verify/resend", authHandler.ResendVerification)
	limited.PUT("/auth/verify/:token", authHandler.VerifyAccount)
	limited.POST("/auth/login", authHandler.Login)
	limited.PUT("/auth/forgot-password", authHandler.ForgotPassword)
	limited.PUT("/auth/reset-password/:token", authHandler.ResetPassword)

	// The refresh endpoint reads its own cookies; authentication happens in
	// the handler because a valid access token short-circuits the flow.
	api.POST("/auth/refresh-token", authHandler.RefreshToken)

	// Cookie-authenticated routes: signature check by echo-jwt, then
	// revocation check and user load.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.AccessSecret(),
		TokenLookup: "cookie:" + handler.AccessTokenCookie,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(echo.Context, error) error {
			// Missing, malformed, expired and mis-signed tokens all look
			// the same to the caller.
			return apperrors.ErrUnauthorized
		},
	}), middleware.Authenticate(users, blacklist))

	secured.GET("/auth/self-identification", authHandler.SelfIdentification)
	secured.PUT("/auth/logout", authHandler.Logout)
	secured.PUT("/auth/change-password", authHandler.ChangePassword)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return apperrors.NewHTTPError(http.StatusNotFound, "route not found", "NOT_FOUND")
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders every error through the uniform envelope. Nothing is
// allowed to escape to the transport layer unwrapped.
func errorHandler(cfg *config.Config, log *zap.Logger) echo.HTTPErrorHandler {
	dev := cfg.IsDevelopment()
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *apperrors.HTTPError
		if echoErr, ok := err.(*echo.HTTPError); ok {
			httpErr = fromEchoError(echoErr)
		} else {
			httpErr = apperrors.MapError(err)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("url", c.Request().RequestURI),
			)
		}

		if writeErr := handler.Fail(c, httpErr, err, dev); writeErr != nil {
			log.Error("write error response", zap.Error(writeErr))
		}
	}
}

func fromEchoError(echoErr *echo.HTTPError) *apperrors.HTTPError {
	message := http.StatusText(echoErr.Code)
	if s, ok := echoErr.Message.(string); ok && s != "" {
		message = s
	}
	code := strings.ReplaceAll(strings.ToUpper(http.StatusText(echoErr.Code)), " ", "_")
	return apperrors.NewHTTPError(echoErr.Code, message, code)
}
