package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "authbase/internal/errors"
)

// RequestMeta echoes back where the request came from, part of the uniform
// envelope.
type RequestMeta struct {
	IP     string `json:"ip"`
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Envelope is the uniform success response shape.
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Request    RequestMeta `json:"request"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// ErrorPayload describes the failure inside the error envelope. Trace is
// populated in development mode only.
type ErrorPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// ErrorEnvelope mirrors Envelope with success false and an error payload.
type ErrorEnvelope struct {
	Success    bool         `json:"success"`
	StatusCode int          `json:"statusCode"`
	Request    RequestMeta  `json:"request"`
	Message    string       `json:"message"`
	Data       interface{}  `json:"data"`
	Error      ErrorPayload `json:"error"`
}

const successMessage = "The operation has been successful"

func requestMeta(c echo.Context) RequestMeta {
	return RequestMeta{
		IP:     c.RealIP(),
		Method: c.Request().Method,
		URL:    c.Request().RequestURI,
	}
}

// OK writes a success envelope.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Request:    requestMeta(c),
		Message:    successMessage,
		Data:       data,
	})
}

// Fail writes an error envelope. Trace carries the wrapped cause and is
// included only when dev is true.
func Fail(c echo.Context, httpErr *apperrors.HTTPError, cause error, dev bool) error {
	payload := ErrorPayload{
		Name:    httpErr.Code,
		Message: httpErr.Message,
	}
	if dev && cause != nil {
		payload.Trace = cause.Error()
	}
	return c.JSON(httpErr.StatusCode, ErrorEnvelope{
		Success:    false,
		StatusCode: httpErr.StatusCode,
		Request:    requestMeta(c),
		Message:    httpErr.Message,
		Data:       nil,
		Error:      payload,
	})
}
