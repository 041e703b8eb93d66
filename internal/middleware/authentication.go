package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"authbase/internal/auth"
	apperrors "authbase/internal/errors"
	"authbase/internal/model"
	"authbase/internal/repository"
)

const userContextKey = "authenticatedUser"

// Authenticate runs after the JWT middleware has verified the access-token
// cookie. It rejects tokens revoked by logout and attaches the user document
// to the request context. Every failure mode is a plain 401; callers cannot
// distinguish a revoked token from an absent one.
func Authenticate(users repository.UserRepository, blacklist auth.BlacklistStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return apperrors.ErrUnauthorized
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return apperrors.ErrUnauthorized
			}

			ctx := c.Request().Context()
			if revoked, _ := blacklist.IsAccessTokenBlacklisted(ctx, token.Raw); revoked {
				return apperrors.ErrUnauthorized
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return apperrors.ErrUnauthorized
			}
			user, err := users.FindByID(ctx, id, repository.FieldSelection{})
			if err != nil {
				return err
			}
			if user == nil {
				return apperrors.ErrUnauthorized
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AuthenticatedUser returns the user attached by Authenticate, or nil.
func AuthenticatedUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
