package impl

import (
	"context"
	"testing"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	mockRepo "foodie/internal/mocks/repository"
	mockSvc "foodie/internal/mocks/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(mockRepo.NewMockTransactionManager(t), userRepo, nil, newDiscardLogger())

	userID := uuid.New()
	userRepo.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Name: "Alice"}, nil)

	user, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.GetProfile(context.Background(), uuid.Nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	svc := NewProfileService(mockRepo.NewMockTransactionManager(t), userRepo, nil, newDiscardLogger())

	userID := uuid.New()
	userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetProfile(context.Background(), userID)

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_UpdateProfile(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	userID := uuid.New()
	oldAvatar := "https://example.com/old.png"

	tests := []struct {
		name       string
		input      *usecase.UpdateProfileInput
		wantName   string
		wantAvatar *string
		wantErr    error
	}{
		{
			name:       "rename keeps avatar",
			input:      &usecase.UpdateProfileInput{Name: strPtr("  Alicia ")},
			wantName:   "Alicia",
			wantAvatar: &oldAvatar,
		},
		{
			name:       "empty avatar clears it",
			input:      &usecase.UpdateProfileInput{Avatar: strPtr("")},
			wantName:   "Alice",
			wantAvatar: nil,
		},
		{
			name:    "blank name is rejected",
			input:   &usecase.UpdateProfileInput{Name: strPtr("   ")},
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager := mockRepo.NewMockTransactionManager(t)
			cache := mockSvc.NewMockQueryCache(t)
			repos := newTxRepos(t)
			svc := NewProfileService(txManager, mockRepo.NewMockUserRepository(t), cache, newDiscardLogger())

			avatar := oldAvatar
			expectTx(txManager, repos)
			repos.user.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Name: "Alice", Avatar: &avatar}, nil)

			if tt.wantErr == nil {
				repos.user.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
				cache.EXPECT().
					Invalidate(mock.Anything, []service.CacheKey{{Entity: service.CacheEntityAdminUsers, Scope: service.CacheScopeAll}}).
					Return(nil)
			}

			user, err := svc.UpdateProfile(context.Background(), userID, tt.input)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
			assert.Equal(t, tt.wantAvatar, user.Avatar)
		})
	}
}
