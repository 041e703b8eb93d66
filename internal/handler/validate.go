package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "authbase/internal/errors"
)

// bindAndValidate decodes the request body into req and runs the schema
// validation, reporting the first failing field as a 422.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperrors.NewValidationError(firstFieldError(err))
	}
	return nil
}

func firstFieldError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed on the %s=%s rule", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
	return "invalid request body"
}
