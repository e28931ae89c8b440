package postgres

import (
	"context"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// authRepository stores sign-in credentials: one row per (provider, subject).
// Email rows keep the bcrypt hash; Google rows keep only the subject.
type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

var authWriteConflicts = writeConflicts{
	unique:     repository.ErrAuthAlreadyExists,
	foreignKey: domainerrors.ErrUserCreationFailed.WrapMessage("invalid user reference"),
	notNull:    domainerrors.ErrUserCreationFailed.WrapMessage("missing required authentication information"),
}

func (repo *authRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	row := model.AuthenticationModel{
		ID:             auth.ID,
		UserID:         auth.UserID,
		Provider:       string(auth.Provider),
		ProviderUserID: auth.ProviderUserID,
		PasswordHash:   auth.PasswordHash,
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translateWriteError(err, authWriteConflicts, "failed to create authentication")
	}

	auth.ID = row.ID
	auth.CreatedAt = row.CreatedAt

	return nil
}

func (repo *authRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	row, err := firstWhere[model.AuthenticationModel](ctx, repo.db, repository.ErrAuthNotFound,
		"provider = ? AND provider_user_id = ?", string(provider), providerUserID)
	if err != nil {
		return nil, err
	}

	return &entity.Authentication{
		ID:             row.ID,
		UserID:         row.UserID,
		Provider:       entity.ProviderType(row.Provider),
		ProviderUserID: row.ProviderUserID,
		PasswordHash:   row.PasswordHash,
		CreatedAt:      row.CreatedAt,
	}, nil
}
