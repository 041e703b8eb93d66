package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidPhoneNumber is returned when the phone number cannot be parsed
	// or no timezone can be resolved for it.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	// ErrInvalidVerification is returned when the verification token/code pair
	// matches no user.
	ErrInvalidVerification = errors.New("invalid verification token or code")
	// ErrAlreadyVerified is returned when the account was verified before.
	ErrAlreadyVerified = errors.New("account already verified")
	// ErrVerificationRequired is returned when the flow needs a verified account.
	ErrVerificationRequired = errors.New("account verification required")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidOldPassword is returned when the presented old password is wrong.
	ErrInvalidOldPassword = errors.New("invalid old password")
	// ErrPasswordUnchanged is returned when the new password equals the old one.
	ErrPasswordUnchanged = errors.New("new password matches old password")
	// ErrResetLinkExpired is returned when the reset token expiry has elapsed.
	ErrResetLinkExpired = errors.New("password reset link expired")
	// ErrInvalidRequest is returned when a flow precondition is structurally
	// broken, e.g. a reset record without an expiry.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized is returned for missing, invalid or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyRequests is returned when the rate-limit budget is exhausted.
	ErrTooManyRequests = errors.New("too many requests")
)

// HTTPError carries a status code and a stable machine code alongside the
// human message.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// NewValidationError wraps a validation failure as a 422.
func NewValidationError(message string) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, "VALIDATION_ERROR")
}

// MapError maps domain errors to HTTP errors. Unknown errors become a 500
// without leaking the underlying message.
func MapError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidPhoneNumber):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_PHONE_NUMBER")
	case errors.Is(err, ErrInvalidVerification):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_VERIFICATION")
	case errors.Is(err, ErrAlreadyVerified):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "ALREADY_VERIFIED")
	case errors.Is(err, ErrVerificationRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFICATION_REQUIRED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidOldPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OLD_PASSWORD")
	case errors.Is(err, ErrPasswordUnchanged):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_UNCHANGED")
	case errors.Is(err, ErrResetLinkExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESET_LINK_EXPIRED")
	case errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrTooManyRequests):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "TOO_MANY_REQUESTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
