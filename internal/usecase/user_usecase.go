// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"foodie/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// GoogleCallbackInput carries the Google ID token obtained by the client.
type GoogleCallbackInput struct {
	IDToken string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful sign-in or sign-up.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns a fresh access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// UserUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser creates a user with an email credential and signs it in.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*LoginOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	// GoogleCallback signs in with a Google ID token, creating the user on first use.
	GoogleCallback(ctx context.Context, input *GoogleCallbackInput) (*LoginOutput, error)
	LogoutAllDevices(ctx context.Context, userID uuid.UUID) error
}
