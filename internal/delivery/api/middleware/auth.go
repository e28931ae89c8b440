package middleware

import (
	"log/slog"
	"strings"

	"foodie/internal/delivery/api/response"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyRoles  = "roles"
	bearerPrefix     = "Bearer "
)

// AuthMiddleware provides JWT authentication and access guards.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Invalid or expired token")
		}
		if claims.Type != service.TokenTypeAccess || claims.UserID == uuid.Nil {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), "Invalid or expired token")
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRoles, entity.RolesFromStrings(claims.Roles))

		ctx := deliverycontext.WithUserID(c.Request().Context(), claims.UserID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// Require guards a route group with an access requirement.
// It must be used AFTER Authenticate.
func (m *AuthMiddleware) Require(requirement entity.AccessRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := entity.AccessSession{User: sessionUser(c)}

			switch entity.EvaluateAccess(session, requirement) {
			case entity.AccessAllow:
				return next(c)
			case entity.AccessRedirectHome:
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), domainerrors.ErrForbidden.Message())
			default:
				return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), domainerrors.ErrUnauthenticated.Message())
			}
		}
	}
}

func sessionUser(c echo.Context) *entity.User {
	userID, ok := GetUserID(c)
	if !ok {
		return nil
	}

	user := &entity.User{ID: userID, Role: entity.RoleUser}
	if roles, ok := GetRoles(c); ok && roles.Contains(entity.RoleAdmin) {
		user.Role = entity.RoleAdmin
	}

	return user
}

// GetUserID returns the authenticated user ID set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}

	return userID, true
}

// GetRoles returns the roles carried by the access token.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	roles, ok := c.Get(contextKeyRoles).(entity.Roles)

	return roles, ok
}
