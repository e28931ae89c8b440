// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"foodie/internal/delivery/api/middleware"
	"foodie/internal/delivery/api/response"
	"foodie/internal/usecase"
	"foodie/pkg/apimodel"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// AuthHandler serves sign-up, sign-in and token endpoints.
type AuthHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// SignUp registers an email/password account and signs it in.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req apimodel.SignUpRequest
	if ok, err := bindAndValidate(c, &req, "Invalid registration input"); !ok {
		return err
	}

	output, err := h.userUC.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toSession(output))
}

// SignIn exchanges credentials for a session.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req apimodel.SignInRequest
	if ok, err := bindAndValidate(c, &req, "Invalid login input"); !ok {
		return err
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toSession(output))
}

// Refresh issues a new access token for a stored refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req apimodel.RefreshRequest
	if ok, err := bindAndValidate(c, &req, "Invalid refresh token input"); !ok {
		return err
	}

	output, err := h.userUC.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &apimodel.AccessToken{AccessToken: output.AccessToken})
}

// SignOut revokes one refresh token.
func (h *AuthHandler) SignOut(c echo.Context) error {
	var req apimodel.SignOutRequest
	if ok, err := bindAndValidate(c, &req, "Invalid logout input"); !ok {
		return err
	}

	if err := h.userUC.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: req.RefreshToken}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// SignOutEverywhere revokes every refresh token of the caller.
func (h *AuthHandler) SignOutEverywhere(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, codeInvalidToken, "Invalid user ID in token")
	}

	if err := h.userUC.LogoutAllDevices(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// GoogleCallback signs in with a Google ID token, from a form field or a JSON body.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	req := apimodel.GoogleSignInRequest{IDToken: c.FormValue("id_token")}
	if req.IDToken == "" {
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, codeInvalidInput, "Invalid Google callback input")
		}
	}

	if req.IDToken == "" {
		return response.BadRequest(c, codeInvalidInput, "ID token is required")
	}

	output, err := h.userUC.GoogleCallback(c.Request().Context(), &usecase.GoogleCallbackInput{IDToken: req.IDToken})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toSession(output))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
