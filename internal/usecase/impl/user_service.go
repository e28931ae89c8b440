// Package impl implements the use cases on top of the repository and service ports.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService covers account creation, sign-in and sessions. Sign-in paths
// all end in openSession, which enforces auth.maxActiveSessions.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	cache             *queryCache
	maxActiveSessions int
	logger            *slog.Logger
}

type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	AuthRepo          repository.AuthRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Cache             service.QueryCache
	Config            *config.Config
	Logger            *slog.Logger
}

func NewUserService(params UserServiceParams) usecase.UserUsecase {
	srv := &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		cache:             newQueryCache(params.Cache, params.Config, params.Logger),
		logger:            params.Logger,
	}
	if params.Config != nil && params.Config.Auth != nil {
		srv.maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return srv
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates the account, its email credential and the first
// session in one transaction. The password is checked and hashed before the
// transaction starts.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Info("Registration rejected: weak password", slog.String("email", email))

		return nil, domainerrors.ErrPasswordStrength.WithDetails(err.Error())
	}
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var output *usecase.LoginOutput
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		_, err := repos.AuthRepo().FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		switch {
		case err == nil:
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email credential already registered")
		case !errors.Is(err, repository.ErrAuthNotFound):
			return errors.Wrap(err, "failed to look up email credential")
		}

		user := newUserAccount(email, input.Name)
		if err := createUser(ctx, repos.UserRepo(), user); err != nil {
			return err
		}

		credential := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   passwordHash,
		}
		if err := repos.AuthRepo().CreateAuthentication(ctx, credential); err != nil {
			if errors.Is(err, repository.ErrAuthAlreadyExists) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email credential already registered")
			}

			return errors.Wrap(err, "failed to create email credential")
		}

		output, err = srv.openSession(ctx, repos, user)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}
	srv.log(ctx).Info("User registered", slog.String("user_id", output.User.ID.String()))
	srv.invalidateUserCounts(ctx)

	return output, nil
}

// invalidateUserCounts drops the back-office views that list or count users.
func (srv *userService) invalidateUserCounts(ctx context.Context) {
	srv.cache.invalidate(ctx,
		globalKey(service.CacheEntityAdminUsers),
		globalKey(service.CacheEntityAdminStats),
	)
}

// Login answers ErrInvalidCredentials alike for an unknown email, a wrong
// password and a credential whose user is gone.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.checkPassword(ctx, email, input.Password)
	if err != nil {
		srv.log(ctx).Info("Login rejected", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	accessToken, refreshToken, err := srv.generateUserTokens(user)
	if err != nil {
		return nil, err
	}
	if err := srv.persistLoginRefreshToken(ctx, user, refreshToken); err != nil {
		srv.log(ctx).Warn("Login failed to open a session", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create refresh token during login")
	}
	srv.log(ctx).Debug("User logged in", slog.String("user_id", user.ID.String()))

	return &usecase.LoginOutput{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// checkPassword runs bcrypt outside any transaction.
func (srv *userService) checkPassword(ctx context.Context, email, password string) (*entity.User, error) {
	credential, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if errors.Is(err, repository.ErrAuthNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "no email credential")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load email credential")
	}
	if !srv.hasher.Check(password, credential.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	user, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "credential without user")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load login user")
	}

	return user, nil
}

// newUserAccount builds a plain user. A blank name falls back to the email's
// local part.
func newUserAccount(email, name string) *entity.User {
	user := &entity.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  entity.RoleUser,
	}
	if user.Name == "" {
		user.Name = entity.DefaultNameFromEmail(email)
	}

	return user
}

func createUser(ctx context.Context, userRepo repository.UserRepository, user *entity.User) error {
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserEmailTaken) {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already bound to a user")
		}

		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
