package postgres

import (
	"context"
	"time"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository stores sessions as SHA-256 hashes of their refresh
// tokens. Expired rows are invisible to reads and removed lazily.
type refreshTokenRepository struct {
	db *gorm.DB
	// now is swapped in tests.
	now func() time.Time
}

func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db, now: time.Now}
}

var refreshTokenWriteConflicts = writeConflicts{
	unique:     domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists"),
	foreignKey: domainerrors.ErrUserNotFound.WrapMessage("invalid user reference"),
}

// CreateRefreshToken stores a new session and drops the user's expired ones.
func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	row := model.RefreshTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND expires_at <= ?", token.UserID, repo.now()).
			Delete(&model.RefreshTokenModel{}).Error; err != nil {
			return errors.WithStack(err)
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		return translateWriteError(err, refreshTokenWriteConflicts, "failed to create refresh token")
	}

	token.ID = row.ID
	token.CreatedAt = row.CreatedAt

	return nil
}

func (repo *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	row, err := firstWhere[model.RefreshTokenModel](ctx, repo.db, repository.ErrRefreshTokenNotFound,
		"token_hash = ? AND expires_at > ?", tokenHash, repo.now())
	if err != nil {
		return nil, err
	}

	return &entity.RefreshToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// DeleteRefreshTokenByHash ends one session. Deleting an unknown token is ErrRefreshTokenNotFound.
func (repo *refreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

func (repo *refreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshTokenModel{}).Error

	return errors.WithStack(err)
}

func (repo *refreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND expires_at > ?", userID, repo.now()).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return int(count), nil
}
