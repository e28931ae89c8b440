package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("quantity must be >= 1")

	assert.Equal(t, "quantity must be >= 1", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.True(t, stderrors.Is(detailed, ErrValidationFailed))
	assert.False(t, stderrors.Is(detailed, ErrConflict))
}

func TestBaseError_WrapMessageStaysMatchable(t *testing.T) {
	err := errors.Wrap(ErrOrderNotFound.WrapMessage("order 7"), "load")

	var appErr AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "ORDER_NOT_FOUND", appErr.ErrorCode())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert order")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "insert order", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestBaseError_WithCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := errors.Wrap(ErrCheckoutFailed.WithCause(cause), "place order")

	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "deadlock detected")

	var appErr AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "CHECKOUT_FAILED", appErr.ErrorCode())
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
}
