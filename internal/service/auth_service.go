package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"authbase/internal/auth"
	"authbase/internal/config"
	apperrors "authbase/internal/errors"
	"authbase/internal/hash"
	"authbase/internal/mail"
	"authbase/internal/model"
	"authbase/internal/phone"
	"authbase/internal/repository"
)

const (
	verificationCodeLength    = 6
	passwordResetExpiryMinute = 15
	notifyTimeout             = 15 * time.Second
)

// RegisterInput is the normalized register payload after schema validation.
type RegisterInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Consent     bool
}

// LoginResult carries the issued credentials and the authenticated user.
type LoginResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the user-facing authentication flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyAccount(ctx context.Context, token, code string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
}

type authService struct {
	users     repository.UserRepository
	refresh   repository.RefreshTokenRepository
	jwt       *auth.JWTService
	blacklist auth.BlacklistStore
	notifier  mail.Notifier
	cfg       *config.Config
	log       *zap.Logger
}

// NewAuthService creates the authentication service.
func NewAuthService(
	users repository.UserRepository,
	refresh repository.RefreshTokenRepository,
	jwt *auth.JWTService,
	blacklist auth.BlacklistStore,
	notifier mail.Notifier,
	cfg *config.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:     users,
		refresh:   refresh,
		jwt:       jwt,
		blacklist: blacklist,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

// Register creates an unverified user and dispatches the confirmation email.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	parsed, err := phone.Parse(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	// Fast-path duplicate check; the unique index on email is the real
	// invariant enforcer (Create maps duplicate keys to the same error).
	existing, err := s.users.FindByEmail(ctx, in.Email, repository.FieldSelection{})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashed, err := hash.Password(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token := uuid.NewString()
	code, err := generateOTP(verificationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	user := &model.User{
		Name:  in.Name,
		Email: in.Email,
		PhoneNumber: model.PhoneNumber{
			ISOCode:             parsed.ISOCode,
			CountryCode:         parsed.CountryCode,
			InternationalNumber: parsed.InternationalNumber,
		},
		Timezone: parsed.Timezone,
		Password: hashed,
		Role:     model.RoleUser,
		AccountVerification: model.AccountVerification{
			Status: false,
			Token:  token,
			Code:   code,
		},
		Consent: in.Consent,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	confirmationURL := fmt.Sprintf("%s/verify/%s?code=%s", s.cfg.FrontendURL, token, code)
	s.notify(mail.BuildVerificationEmail(user.Email, user.Name, confirmationURL))

	return user, nil
}

// VerifyAccount flips the verification status exactly once.
func (s *authService) VerifyAccount(ctx context.Context, token, code string) error {
	user, err := s.users.FindByVerificationTokenAndCode(ctx, token, code)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrInvalidVerification
	}
	if user.AccountVerification.Status {
		return apperrors.ErrAlreadyVerified
	}

	now := time.Now().UTC()
	user.AccountVerification.Status = true
	user.AccountVerification.Timestamp = &now
	return s.users.Save(ctx, user)
}

// ResendVerification rotates the verification token/code for an unverified
// user and resends the confirmation email.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email, repository.FieldSelection{})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.AccountVerification.Status {
		return apperrors.ErrAlreadyVerified
	}

	token := uuid.NewString()
	code, err := generateOTP(verificationCodeLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	user.AccountVerification.Token = token
	user.AccountVerification.Code = code
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	confirmationURL := fmt.Sprintf("%s/verify/%s?code=%s", s.cfg.FrontendURL, token, code)
	s.notify(mail.BuildVerificationEmail(user.Email, user.Name, confirmationURL))
	return nil
}

// Login authenticates a verified user and issues both tokens. The refresh
// token is persisted before the result is returned, so the revocation gate is
// in place by the time the cookie exists.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email, repository.FieldSelection{IncludePassword: true})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !user.AccountVerification.Status {
		return nil, apperrors.ErrVerificationRequired
	}
	if !hash.Verify(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	userID := user.ID.Hex()
	accessToken, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	// Keep the stored hash untouched on this save.
	user.Password = ""
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.refresh.Create(ctx, refreshToken, now.Add(config.RefreshTokenTTL)); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the presented refresh token and blacklists the access token
// for its remaining lifetime. Both arguments are optional.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken != "" {
		if err := s.refresh.DeleteByValue(ctx, refreshToken); err != nil {
			return err
		}
	}
	if accessToken != "" {
		if claims, err := s.jwt.VerifyAccessToken(accessToken); err == nil && claims.ExpiresAt != nil {
			remaining := time.Until(claims.ExpiresAt.Time)
			if err := s.blacklist.BlacklistAccessToken(ctx, accessToken, remaining); err != nil {
				s.log.Warn("blacklist access token", zap.Error(err))
			}
		}
	}
	return nil
}

// RefreshAccessToken exchanges a previously-issued refresh token for a new
// access token. The store lookup runs before signature verification; a token
// absent from the store is revoked no matter how it is signed.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	stored, err := s.refresh.FindByValue(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", apperrors.ErrUnauthorized
	}

	claims, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	accessToken, err := s.jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// ForgotPassword stores a time-boxed reset token and emails the reset link.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email, repository.FieldSelection{})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !user.AccountVerification.Status {
		return apperrors.ErrVerificationRequired
	}

	token := uuid.NewString()
	expiry := time.Now().Add(passwordResetExpiryMinute*time.Minute).UnixMilli()
	user.PasswordReset.Token = &token
	user.PasswordReset.Expiry = &expiry
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password/%s", s.cfg.FrontendURL, token)
	s.notify(mail.BuildResetRequestEmail(user.Email, user.Name, resetURL, passwordResetExpiryMinute))
	return nil
}

// ResetPassword commits the new password and clears the reset credential in
// the same write, so a reset link can never be replayed.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !user.AccountVerification.Status {
		return apperrors.ErrVerificationRequired
	}
	if user.PasswordReset.Expiry == nil {
		return apperrors.ErrInvalidRequest
	}
	if time.Now().UnixMilli() > *user.PasswordReset.Expiry {
		return apperrors.ErrResetLinkExpired
	}

	hashed, err := hash.Password(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user.Password = hashed
	user.PasswordReset.Token = nil
	user.PasswordReset.Expiry = nil
	user.PasswordReset.LastResetAt = &now
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.notify(mail.BuildResetConfirmationEmail(user.Email, user.Name))
	return nil
}

// ChangePassword rotates the password of an authenticated user.
func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID, repository.FieldSelection{IncludePassword: true})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !hash.Verify(oldPassword, user.Password) {
		return apperrors.ErrInvalidOldPassword
	}
	if newPassword == oldPassword {
		return apperrors.ErrPasswordUnchanged
	}

	hashed, err := hash.Password(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.notify(mail.BuildChangeConfirmationEmail(user.Email, user.Name))
	return nil
}

// notify dispatches an email off the request path. The state mutation is
// already committed by the time this runs; failures are logged and swallowed.
func (s *authService) notify(msg mail.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, msg); err != nil {
			s.log.Error("email service", zap.Error(err), zap.String("subject", msg.Subject))
		}
	}()
}

// generateOTP returns a numeric code of the given length with a non-zero
// leading digit.
func generateOTP(length int) (string, error) {
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	span := new(big.Int).Sub(max, min)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(n, min).String(), nil
}
