package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"authbase/internal/config"
	apperrors "authbase/internal/errors"
	"authbase/internal/middleware"
	"authbase/internal/service"
)

// AuthHandler exposes the authentication flows over HTTP.
type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// RegisterRequest is the register body schema.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=72"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=6,max=24"`
	Consent     bool   `json:"consent" validate:"required,eq=true"`
}

// LoginRequest is the login body schema.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=24"`
}

// EmailRequest is shared by forgot-password and resend-verification.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the reset-password body schema.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=24"`
}

// ChangePasswordRequest is the change-password body schema. The confirm field
// equality is a schema-level rule, checked before the service runs.
type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword" validate:"required,min=6,max=24"`
	NewPassword        string `json:"newPassword" validate:"required,min=6,max=24"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,min=6,max=24,eqfield=NewPassword"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Consent:     req.Consent,
	})
	if err != nil {
		return err
	}

	return OK(c, http.StatusCreated, echo.Map{"_id": user.ID.Hex()})
}

// VerifyAccount handles PUT /auth/verify/:token?code=CODE.
func (h *AuthHandler) VerifyAccount(c echo.Context) error {
	token := c.Param("token")
	code := c.QueryParam("code")
	if token == "" || code == "" {
		return apperrors.ErrInvalidVerification
	}

	if err := h.svc.VerifyAccount(c.Request().Context(), token, code); err != nil {
		return err
	}
	return OK(c, http.StatusOK, nil)
}

// ResendVerification handles PUT /auth/verify/resend.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req EmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return OK(c, http.StatusOK, nil)
}

// Login handles POST /auth/login, setting both token cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setAccessCookie(c, h.cfg, result.AccessToken)
	setRefreshCookie(c, h.cfg, result.RefreshToken)

	return OK(c, http.StatusOK, echo.Map{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

// SelfIdentification handles GET /auth/self-identification.
func (h *AuthHandler) SelfIdentification(c echo.Context) error {
	user := middleware.AuthenticatedUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	return OK(c, http.StatusOK, user)
}

// Logout handles PUT /auth/logout. It revokes whatever tokens the cookies
// carry and clears both cookies either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	accessToken := cookieValue(c, AccessTokenCookie)
	refreshToken := cookieValue(c, RefreshTokenCookie)

	if err := h.svc.Logout(c.Request().Context(), accessToken, refreshToken); err != nil {
		return err
	}

	clearAuthCookies(c, h.cfg)
	return OK(c, http.StatusOK, nil)
}

// RefreshToken handles POST /auth/refresh-token. A still-present access-token
// cookie short-circuits; otherwise the refresh token must exist in the store
// and verify before a new access token is issued.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	if accessToken := cookieValue(c, AccessTokenCookie); accessToken != "" {
		return OK(c, http.StatusOK, echo.Map{"accessToken": accessToken})
	}

	refreshToken := cookieValue(c, RefreshTokenCookie)
	if refreshToken == "" {
		return apperrors.ErrUnauthorized
	}

	accessToken, err := h.svc.RefreshAccessToken(c.Request().Context(), refreshToken)
	if err != nil {
		return err
	}

	setAccessCookie(c, h.cfg, accessToken)
	return OK(c, http.StatusOK, echo.Map{"accessToken": accessToken})
}

// ForgotPassword handles PUT /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req EmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return OK(c, http.StatusOK, nil)
}

// ResetPassword handles PUT /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.ResetPassword(c.Request().Context(), c.Param("token"), req.NewPassword); err != nil {
		return err
	}
	return OK(c, http.StatusOK, nil)
}

// ChangePassword handles PUT /auth/change-password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := middleware.AuthenticatedUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}

	if err := h.svc.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return OK(c, http.StatusOK, nil)
}
