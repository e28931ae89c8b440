package impl

import (
	"context"
	"log/slog"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// GoogleCallback signs in with a Google ID token, creating or linking the
// account as needed, and opens a session in the same transaction.
func (srv *userService) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.LoginOutput, error) {
	identity, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Info("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, err.Error())
	}

	var (
		output  *usecase.LoginOutput
		created bool
	)
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var user *entity.User
		user, created, err = srv.resolveGoogleUser(ctx, repos, identity)
		if err != nil {
			return err
		}
		output, err = srv.openSession(ctx, repos, user)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Google sign-in failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to sign in with Google")
	}
	if created {
		srv.invalidateUserCounts(ctx)
	}

	return output, nil
}

// resolveGoogleUser maps a Google subject to a user. A known subject signs
// straight in. Otherwise a verified email that matches an account links the
// subject to it. Failing both, a new account is created. An unverified email
// that matches an account is refused. The bool reports a new account.
func (srv *userService) resolveGoogleUser(ctx context.Context, repos repository.RepositoryFactory, identity *service.OAuthUser) (*entity.User, bool, error) {
	credential, err := repos.AuthRepo().FindAuthentication(ctx, entity.ProviderTypeGoogle, identity.ID)
	if err == nil {
		user, err := repos.UserRepo().FindByID(ctx, credential.UserID)
		if err != nil {
			return nil, false, errors.Wrap(err, "failed to load Google user")
		}

		return user, false, nil
	}
	if !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, false, errors.Wrap(err, "failed to look up Google credential")
	}

	email := normalizeEmail(identity.Email)
	existing, err := repos.UserRepo().FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user, err := srv.createGoogleUser(ctx, repos, identity, email)

		return user, err == nil, err
	case err != nil:
		return nil, false, errors.Wrap(err, "failed to find user by email")
	case !identity.EmailVerified:
		return nil, false, errors.Wrap(domainerrors.ErrOAuthFailed, "unverified Google email matches an existing account")
	}

	if err := linkGoogleIdentity(ctx, repos.AuthRepo(), existing.ID, identity.ID); err != nil {
		return nil, false, err
	}
	srv.log(ctx).Info("Google identity linked", slog.String("user_id", existing.ID.String()))

	return existing, false, nil
}

func (srv *userService) createGoogleUser(ctx context.Context, repos repository.RepositoryFactory, identity *service.OAuthUser, email string) (*entity.User, error) {
	user := newUserAccount(email, identity.Name)
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		user.Avatar = &avatar
	}

	if err := createUser(ctx, repos.UserRepo(), user); err != nil {
		return nil, err
	}
	if err := linkGoogleIdentity(ctx, repos.AuthRepo(), user.ID, identity.ID); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("User created from Google sign-in", slog.String("user_id", user.ID.String()))

	return user, nil
}

func linkGoogleIdentity(ctx context.Context, authRepo repository.AuthRepository, userID uuid.UUID, subject string) error {
	err := authRepo.CreateAuthentication(ctx, &entity.Authentication{
		UserID:         userID,
		Provider:       entity.ProviderTypeGoogle,
		ProviderUserID: subject,
	})
	if errors.Is(err, repository.ErrAuthAlreadyExists) {
		return errors.Wrap(domainerrors.ErrConflict, "Google account already linked")
	}

	return errors.Wrap(err, "failed to create Google credential")
}
