package handler

import (
	"foodie/internal/delivery/api/response"
	domainerrors "foodie/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	codeInvalidInput     = "INVALID_INPUT"
	codeValidationFailed = "VALIDATION_FAILED"
	codeInvalidToken     = "INVALID_TOKEN"
)

// bindAndValidate binds the body into req and runs the struct validator.
// On failure the error response has already been written and ok is false.
func bindAndValidate(c echo.Context, req any, bindMessage string) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, codeInvalidInput, bindMessage)
	}

	if err := c.Validate(req); err != nil {
		return false, response.BadRequestWithDetails(c, codeValidationFailed, domainerrors.ErrValidationFailed.Message(), err.Error())
	}

	return true, nil
}

// pathUUID parses a UUID path parameter.
// On failure the error response has already been written and ok is false.
func pathUUID(c echo.Context, name string) (id uuid.UUID, ok bool, err error) {
	id, parseErr := uuid.Parse(c.Param(name))
	if parseErr != nil {
		return uuid.Nil, false, response.BadRequest(c, codeInvalidInput, "Invalid "+name)
	}

	return id, true, nil
}
