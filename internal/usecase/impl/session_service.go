package impl

import (
	"context"
	"log/slog"
	"time"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// openSession issues a token pair for user and stores the refresh token's
// hash through repos.
func (srv *userService) openSession(ctx context.Context, repos repository.RepositoryFactory, user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.generateUserTokens(user)
	if err != nil {
		return nil, err
	}
	if err := srv.storeRefreshToken(ctx, repos, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &usecase.LoginOutput{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// persistLoginRefreshToken only pays for a transaction when a session limit
// has to be checked.
func (srv *userService) persistLoginRefreshToken(ctx context.Context, user *entity.User, refreshToken string) error {
	if srv.maxActiveSessions <= 0 {
		return srv.insertRefreshToken(ctx, srv.refreshTokenRepo, user.ID, refreshToken)
	}

	return errors.Wrap(srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return srv.storeRefreshToken(ctx, repos, user.ID, refreshToken)
	}), "session transaction failed")
}

// storeRefreshToken locks the user row before counting, so two concurrent
// sign-ins cannot both take the last free slot.
func (srv *userService) storeRefreshToken(ctx context.Context, repos repository.RepositoryFactory, userID uuid.UUID, refreshToken string) error {
	tokens := repos.RefreshTokenRepo()
	if srv.maxActiveSessions > 0 {
		if err := repos.UserRepo().AcquireSessionMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock user for session count")
		}
		active, err := tokens.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if active >= srv.maxActiveSessions {
			return errors.Wrapf(domainerrors.ErrSessionLimitExceeded, "%d of %d sessions in use", active, srv.maxActiveSessions)
		}
	}

	return srv.insertRefreshToken(ctx, tokens, userID, refreshToken)
}

func (srv *userService) insertRefreshToken(ctx context.Context, tokens repository.RefreshTokenRepository, userID uuid.UUID, refreshToken string) error {
	err := tokens.CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	})

	return errors.Wrap(err, "failed to store refresh token")
}

func (srv *userService) generateUserTokens(user *entity.User) (string, string, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate tokens")
	}

	return accessToken, refreshToken, nil
}

// RefreshToken mints a new access token for a live session. The refresh
// token is not rotated, and the new token carries the user's current role.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}
	if claims.Type != service.TokenTypeRefresh {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "token is not a refresh token")
	}

	var accessToken string
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		stored, err := repos.RefreshTokenRepo().FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(input.RefreshToken))
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "session ended or expired")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find refresh token")
		}
		if stored.UserID != claims.UserID {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token owner mismatch")
		}

		user, err := repos.UserRepo().FindByID(ctx, claims.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "session user no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		accessToken, _, err = srv.generateUserTokens(user)

		return err
	})
	if err != nil {
		srv.log(ctx).Info("Token refresh rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to refresh access token")
	}

	return &usecase.RefreshTokenOutput{AccessToken: accessToken}, nil
}

// Logout deletes the session row. A token that fails validation is still
// looked up by hash, and an unknown token counts as already signed out.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if _, err := srv.tokenService.ValidateToken(input.RefreshToken); err != nil {
		srv.log(ctx).Debug("Logout with an invalid refresh token", slog.Any("error", err))
	}

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, srv.tokenService.HashToken(input.RefreshToken))
	switch {
	case errors.Is(err, repository.ErrRefreshTokenNotFound):
		srv.log(ctx).Debug("Session already ended")
	case err != nil:
		return errors.Wrap(err, "failed to delete refresh token")
	default:
		srv.log(ctx).Info("Session ended")
	}

	return nil
}

// LogoutAllDevices ends every session of the user. Access tokens already
// issued stay valid until they expire.
func (srv *userService) LogoutAllDevices(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}
	if err := srv.refreshTokenRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete sessions")
	}
	srv.log(ctx).Info("All sessions ended", slog.String("user_id", userID.String()))

	return nil
}
