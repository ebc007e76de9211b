package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "homefinder/internal/errors"
)

// errorResponse translates a domain error into an echo HTTP error carrying
// the standard JSON body.
func errorResponse(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) *echo.HTTPError {
	return errorResponse(apperrors.Validation(message))
}

// bindAndValidate decodes the request body into req and runs the registered
// validator. Failures are reported as 400 with the first offending field.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "missing required field: " + fe.Field()
	case "email":
		return "invalid email address"
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return "invalid value for field: " + fe.Field()
	}
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid " + name)
	}
	return uint(id), nil
}

type messageResponse struct {
	Message string `json:"message"`
}
