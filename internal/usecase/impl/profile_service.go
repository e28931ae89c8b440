package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService serves /me. A profile change also drops the cached admin
// user listing, which shows names.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	cache     *queryCache
	logger    *slog.Logger
}

func NewProfileService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	cache service.QueryCache,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		userRepo:  userRepo,
		cache:     newQueryCache(cache, nil, logger),
		logger:    logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the signed-in user's row.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	srv.log(ctx).Debug("Loading profile", slog.String("user_id", userID.String()))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup")
		}

		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile changes the display name and avatar. Nil fields are left as they are,
// an empty avatar clears it.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile update")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := applyProfileInput(user, input); err != nil {
			return err
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "profile update")
			}

			return errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.String("user_id", userID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.cache.invalidate(ctx, globalKey(service.CacheEntityAdminUsers))
	srv.log(ctx).Info("Profile updated", slog.String("user_id", userID.String()))

	return updated, nil
}

// applyProfileInput trims both fields. An empty name is rejected and an
// empty avatar clears it.
func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
		}
		user.Name = name
	}

	if input.Avatar != nil {
		if avatar := strings.TrimSpace(*input.Avatar); avatar != "" {
			user.Avatar = &avatar
		} else {
			user.Avatar = nil
		}
	}

	return nil
}
