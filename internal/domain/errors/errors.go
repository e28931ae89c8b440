// Package errors is the application error taxonomy. Every error a use case
// returns to a client carries an HTTP status, a stable machine-readable code
// and a human-readable message.
package errors

import (
	"net/http"

	"foodie/internal/errors"
)

// AppError is an error that knows how it should be reported to a client.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	// Details is optional context; responses drop it for server errors.
	Details() string
}

// BaseError is a sentinel-friendly AppError. Copies made with WithDetails
// still match the original through errors.Is.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func define(httpCode int, errorCode, message string) *BaseError {
	return NewBaseError(httpCode, errorCode, message, "")
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WrapMessage wraps e with context while keeping it matchable.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) WithDetails(details string) *BaseError {
	clone := *e
	clone.details = details

	return &clone
}

// Is matches any BaseError with the same code.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode
}

// WithCause reports e to the client while keeping cause reachable through
// errors.Is and errors.As.
func (e *BaseError) WithCause(cause error) error {
	return &causedError{BaseError: e, cause: cause}
}

type causedError struct {
	*BaseError
	cause error
}

func (e *causedError) Error() string { return e.message + ": " + e.cause.Error() }
func (e *causedError) Unwrap() error { return e.cause }

// Session and account.
var (
	ErrUnauthenticated      = define(http.StatusUnauthorized, "UNAUTHENTICATED", "Sign in is required")
	ErrForbidden            = define(http.StatusForbidden, "FORBIDDEN", "Access denied")
	ErrUserNotFound         = define(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrUserAlreadyExists    = define(http.StatusConflict, "USER_ALREADY_EXISTS", "This email is already registered")
	ErrUserCreationFailed   = define(http.StatusInternalServerError, "USER_CREATION_FAILED", "Failed to create user")
	ErrUserUpdateFailed     = define(http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user")
	ErrInvalidRole          = define(http.StatusBadRequest, "INVALID_ROLE", "Role must be user or admin")
	ErrAuthNotFound         = define(http.StatusUnauthorized, "AUTH_NOT_FOUND", "Authentication method not found")
	ErrInvalidCredentials   = define(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrRefreshTokenInvalid  = define(http.StatusUnauthorized, "REFRESH_TOKEN_INVALID", "Refresh token is invalid or expired")
	ErrSessionLimitExceeded = define(http.StatusConflict, "SESSION_LIMIT_EXCEEDED", "Too many active sessions")
	ErrPasswordHashFailed   = define(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Password processing failed")
	ErrPasswordStrength     = define(http.StatusBadRequest, "PASSWORD_STRENGTH", "Password is too weak")
	ErrOAuthFailed          = define(http.StatusUnauthorized, "OAUTH_FAILED", "OAuth authentication failed")
	ErrOAuthTokenInvalid    = define(http.StatusBadRequest, "OAUTH_TOKEN_INVALID", "Invalid ID token")
)

// Catalog, cart and orders.
var (
	ErrRestaurantNotFound      = define(http.StatusNotFound, "RESTAURANT_NOT_FOUND", "Restaurant not found")
	ErrMenuItemNotFound        = define(http.StatusNotFound, "MENU_ITEM_NOT_FOUND", "Menu item not found")
	ErrCartItemNotFound        = define(http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Item is not in the cart")
	ErrInvalidQuantity         = define(http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be at least 1")
	ErrOrderNotFound           = define(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrInvalidStatusTransition = define(http.StatusConflict, "INVALID_STATUS_TRANSITION", "Order status cannot move to the requested value")
	ErrCheckoutFailed          = define(http.StatusInternalServerError, "CHECKOUT_FAILED", "Checkout failed, the cart was left unchanged")
)

// Generic.
var (
	ErrValidationFailed = define(http.StatusBadRequest, "VALIDATION_FAILED", "Input validation failed")
	ErrConflict         = define(http.StatusConflict, "CONFLICT", "Resource conflict")
	ErrInternalError    = define(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
)

// DatabaseExecuteError reports a storage failure. The driver error stays
// reachable through Unwrap and never reaches the client.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
