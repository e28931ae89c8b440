package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	"foodie/internal/domain/service"
	mockSvc "foodie/internal/mocks/service"
	"foodie/pkg/apimodel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(t *testing.T, requirement entity.AccessRequirement) (*echo.Echo, *mockSvc.MockTokenService) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	auth := NewAuthMiddleware(tokenSvc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		userID, ok := GetUserID(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		if deliverycontext.GetUserIDFromContext(c.Request().Context()) != userID {
			return c.NoContent(http.StatusTeapot)
		}

		return c.String(http.StatusOK, userID.String())
	}, auth.Authenticate, auth.Require(requirement))

	return e, tokenSvc
}

func serve(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body apimodel.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body.Error.Code
}

func TestAuthenticate_RejectsBadCredentials(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		setup         func(tokenSvc *mockSvc.MockTokenService)
	}{
		{name: "missing header"},
		{name: "not a bearer token", authorization: "Basic abc"},
		{
			name:          "invalid signature",
			authorization: "Bearer forged",
			setup: func(tokenSvc *mockSvc.MockTokenService) {
				tokenSvc.EXPECT().ValidateToken("forged").Return(nil, errors.New("signature is invalid"))
			},
		},
		{
			name:          "refresh token used as access token",
			authorization: "Bearer refresh",
			setup: func(tokenSvc *mockSvc.MockTokenService) {
				tokenSvc.EXPECT().ValidateToken("refresh").
					Return(&service.Claims{UserID: uuid.New(), Type: service.TokenTypeRefresh}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tokenSvc := newGuardedEcho(t, entity.RequireAuthenticated)
			if tt.setup != nil {
				tt.setup(tokenSvc)
			}

			rec := serve(e, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
		})
	}
}

func TestRequire_Decisions(t *testing.T) {
	tests := []struct {
		name        string
		requirement entity.AccessRequirement
		roles       []string
		wantStatus  int
	}{
		{name: "user on user route", requirement: entity.RequireAuthenticated, roles: []string{"user"}, wantStatus: http.StatusOK},
		{name: "user on admin route", requirement: entity.RequireAdmin, roles: []string{"user"}, wantStatus: http.StatusForbidden},
		{name: "no roles on admin route", requirement: entity.RequireAdmin, wantStatus: http.StatusForbidden},
		{name: "admin on admin route", requirement: entity.RequireAdmin, roles: []string{"admin"}, wantStatus: http.StatusOK},
		{name: "unknown role ignored", requirement: entity.RequireAdmin, roles: []string{"superuser"}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tokenSvc := newGuardedEcho(t, tt.requirement)
			userID := uuid.New()
			tokenSvc.EXPECT().ValidateToken("tok").
				Return(&service.Claims{UserID: userID, Roles: tt.roles, Type: service.TokenTypeAccess}, nil)

			rec := serve(e, "Bearer tok")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			}
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
			}
		})
	}
}

func TestRequire_WithoutAuthenticateIsUnauthorized(t *testing.T) {
	auth := NewAuthMiddleware(mockSvc.NewMockTokenService(t), slog.Default())
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, auth.Require(entity.RequireAuthenticated))

	rec := serve(e, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
