package impl

import (
	"context"
	"testing"
	"time"

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

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service           usecase.UserUsecase
	txManager         *mockRepo.MockTransactionManager
	userRepo          *mockRepo.MockUserRepository
	authRepo          *mockRepo.MockAuthRepository
	refreshTokenRepo  *mockRepo.MockRefreshTokenRepository
	hasher            *mockSvc.MockPasswordHasher
	tokenService      *mockSvc.MockTokenService
	googleAuthService *mockSvc.MockOAuthAuthService
	cache             *mockSvc.MockQueryCache
	tx                *txRepos
}

func createTestUserService(t *testing.T, maxActiveSessions int) userServiceFixtures {
	fx := userServiceFixtures{
		txManager:         mockRepo.NewMockTransactionManager(t),
		userRepo:          mockRepo.NewMockUserRepository(t),
		authRepo:          mockRepo.NewMockAuthRepository(t),
		refreshTokenRepo:  mockRepo.NewMockRefreshTokenRepository(t),
		hasher:            mockSvc.NewMockPasswordHasher(t),
		tokenService:      mockSvc.NewMockTokenService(t),
		googleAuthService: mockSvc.NewMockOAuthAuthService(t),
		cache:             mockSvc.NewMockQueryCache(t),
		tx:                newTxRepos(t),
	}

	fx.service = NewUserService(UserServiceParams{
		TxManager:         fx.txManager,
		UserRepo:          fx.userRepo,
		AuthRepo:          fx.authRepo,
		RefreshTokenRepo:  fx.refreshTokenRepo,
		Hasher:            fx.hasher,
		TokenService:      fx.tokenService,
		GoogleAuthService: fx.googleAuthService,
		Cache:             fx.cache,
		Config:            newTestConfig(maxActiveSessions),
		Logger:            newDiscardLogger(),
	})

	return fx
}

func (fx userServiceFixtures) expectSessionStored(refreshRepo *mockRepo.MockRefreshTokenRepository, userID uuid.UUID) {
	fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(time.Hour)
	refreshRepo.EXPECT().
		CreateRefreshToken(mock.Anything, mock.MatchedBy(func(token *entity.RefreshToken) bool {
			return token.UserID == userID && token.TokenHash == "refresh-hash" && token.ExpiresAt.After(time.Now())
		})).
		Return(nil)
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Name:     "",
		Email:    " Alice@Example.com ",
		Password: "Password123!",
	}
	newID := uuid.New()

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	expectTx(fx.txManager, fx.tx)

	fx.tx.auth.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, "alice@example.com").
		Return(nil, repository.ErrAuthNotFound)
	fx.tx.user.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = newID
		}).
		Return(nil)
	fx.tx.auth.EXPECT().
		CreateAuthentication(mock.Anything, mock.MatchedBy(func(auth *entity.Authentication) bool {
			return auth.UserID == newID && auth.PasswordHash == "hashed_password" && auth.ProviderUserID == "alice@example.com"
		})).
		Return(nil)
	fx.tokenService.EXPECT().GenerateTokens(newID, []string{"user"}).Return("access-token", "refresh-token", nil)
	fx.expectSessionStored(fx.tx.refresh, newID)
	fx.expectUserCountsInvalidated()

	output, err := fx.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, "alice", output.User.Name)
	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.Equal(t, entity.RoleUser, output.User.Role)
}

func TestUserService_RegisterUser_EmailAlreadyRegistered(t *testing.T) {
	fx := createTestUserService(t, 0)

	input := &usecase.RegisterUserInput{Name: "Alice", Email: "alice@example.com", Password: "Password123!"}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.auth.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	output, err := fx.service.RegisterUser(context.Background(), input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_RegisterUser_EmailTakenByOtherProvider(t *testing.T) {
	fx := createTestUserService(t, 0)

	input := &usecase.RegisterUserInput{Name: "Alice", Email: "alice@example.com", Password: "Password123!"}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.auth.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)
	fx.tx.user.EXPECT().Create(mock.Anything, mock.Anything).Return(repository.ErrUserEmailTaken)

	_, err := fx.service.RegisterUser(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_RegisterUser_WeakPassword(t *testing.T) {
	fx := createTestUserService(t, 0)

	input := &usecase.RegisterUserInput{Email: "alice@example.com", Password: "short"}
	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(errors.New("too short"))

	output, err := fx.service.RegisterUser(context.Background(), input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t, 0)

	userID := uuid.New()
	input := &usecase.LoginInput{Email: "alice@example.com", Password: "Password123!"}
	user := &entity.User{ID: userID, Email: input.Email, Name: "Alice", Role: entity.RoleAdmin}

	fx.authRepo.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hash"}, nil)
	fx.hasher.EXPECT().Check(input.Password, "hash").Return(true)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(user, nil)
	fx.tokenService.EXPECT().GenerateTokens(userID, []string{"admin"}).Return("access-token", "refresh-token", nil)
	fx.expectSessionStored(fx.refreshTokenRepo, userID)

	output, err := fx.service.Login(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, user, output.User)
	assert.Equal(t, "access-token", output.AccessToken)
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx userServiceFixtures)
	}{
		{
			name: "unknown email",
			setup: func(fx userServiceFixtures) {
				fx.authRepo.EXPECT().
					FindAuthentication(mock.Anything, entity.ProviderTypeEmail, "alice@example.com").
					Return(nil, repository.ErrAuthNotFound)
			},
		},
		{
			name: "wrong password",
			setup: func(fx userServiceFixtures) {
				fx.authRepo.EXPECT().
					FindAuthentication(mock.Anything, entity.ProviderTypeEmail, "alice@example.com").
					Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "hash"}, nil)
				fx.hasher.EXPECT().Check("wrong", "hash").Return(false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t, 0)
			tt.setup(fx)

			output, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "alice@example.com", Password: "wrong"})

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		})
	}
}

func TestUserService_Login_SessionLimitExceeded(t *testing.T) {
	fx := createTestUserService(t, 2)

	userID := uuid.New()
	fx.authRepo.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hash"}, nil)
	fx.hasher.EXPECT().Check("Password123!", "hash").Return(true)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Role: entity.RoleUser}, nil)
	fx.tokenService.EXPECT().GenerateTokens(userID, []string{"user"}).Return("access-token", "refresh-token", nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.user.EXPECT().AcquireSessionMutex(mock.Anything, userID).Return(nil)
	fx.tx.refresh.EXPECT().CountActiveSessionsByUserID(mock.Anything, userID).Return(2, nil)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "alice@example.com", Password: "Password123!"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))
}

func TestUserService_Login_UnderSessionLimit(t *testing.T) {
	fx := createTestUserService(t, 2)

	userID := uuid.New()
	fx.authRepo.EXPECT().
		FindAuthentication(mock.Anything, entity.ProviderTypeEmail, "alice@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hash"}, nil)
	fx.hasher.EXPECT().Check("Password123!", "hash").Return(true)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Role: entity.RoleUser}, nil)
	fx.tokenService.EXPECT().GenerateTokens(userID, []string{"user"}).Return("access-token", "refresh-token", nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.user.EXPECT().AcquireSessionMutex(mock.Anything, userID).Return(nil)
	fx.tx.refresh.EXPECT().CountActiveSessionsByUserID(mock.Anything, userID).Return(1, nil)
	fx.expectSessionStored(fx.tx.refresh, userID)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "alice@example.com", Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestUserService_RefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("issues a new access token", func(t *testing.T) {
		fx := createTestUserService(t, 0)

		fx.tokenService.EXPECT().ValidateToken("refresh-token").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
		expectTx(fx.txManager, fx.tx)
		fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
		fx.tx.refresh.EXPECT().FindRefreshTokenByHash(mock.Anything, "refresh-hash").
			Return(&entity.RefreshToken{UserID: userID}, nil)
		fx.tx.user.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{ID: userID, Role: entity.RoleUser}, nil)
		fx.tokenService.EXPECT().GenerateTokens(userID, []string{"user"}).Return("new-access", "unused", nil)

		output, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", output.AccessToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		fx := createTestUserService(t, 0)

		fx.tokenService.EXPECT().ValidateToken("access-token").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

		_, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "access-token"})

		assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
	})

	t.Run("rejects a revoked session", func(t *testing.T) {
		fx := createTestUserService(t, 0)

		fx.tokenService.EXPECT().ValidateToken("refresh-token").
			Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
		expectTx(fx.txManager, fx.tx)
		fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
		fx.tx.refresh.EXPECT().FindRefreshTokenByHash(mock.Anything, "refresh-hash").
			Return(nil, repository.ErrRefreshTokenNotFound)

		_, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

		assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
	})
}

func TestUserService_Logout(t *testing.T) {
	t.Run("deletes the session", func(t *testing.T) {
		fx := createTestUserService(t, 0)

		fx.tokenService.EXPECT().ValidateToken("refresh-token").Return(&service.Claims{}, nil)
		fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
		fx.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(mock.Anything, "refresh-hash").Return(nil)

		require.NoError(t, fx.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "refresh-token"}))
	})

	t.Run("unknown session is already signed out", func(t *testing.T) {
		fx := createTestUserService(t, 0)

		fx.tokenService.EXPECT().ValidateToken("stale").Return(nil, errors.New("expired"))
		fx.tokenService.EXPECT().HashToken("stale").Return("stale-hash")
		fx.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(mock.Anything, "stale-hash").Return(repository.ErrRefreshTokenNotFound)

		require.NoError(t, fx.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "stale"}))
	})
}

func (fx userServiceFixtures) expectUserCountsInvalidated() {
	fx.cache.EXPECT().
		Invalidate(mock.Anything, []service.CacheKey{
			{Entity: service.CacheEntityAdminUsers, Scope: service.CacheScopeAll},
			{Entity: service.CacheEntityAdminStats, Scope: service.CacheScopeAll},
		}).
		Return(nil).
		Once()
}

func TestUserService_GoogleCallback_CreatesUser(t *testing.T) {
	fx := createTestUserService(t, 0)

	newID := uuid.New()
	oauthUser := &service.OAuthUser{
		ID:            "google-sub",
		Email:         "bob@example.com",
		AvatarURL:     "https://example.com/bob.png",
		Provider:      entity.ProviderTypeGoogle,
		EmailVerified: true,
	}

	fx.googleAuthService.EXPECT().VerifyIDToken(mock.Anything, "id-token").Return(oauthUser, nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.auth.EXPECT().FindAuthentication(mock.Anything, entity.ProviderTypeGoogle, "google-sub").Return(nil, repository.ErrAuthNotFound)
	fx.tx.user.EXPECT().FindByEmail(mock.Anything, "bob@example.com").Return(nil, repository.ErrUserNotFound)
	fx.tx.user.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = newID
		}).
		Return(nil)
	fx.tx.auth.EXPECT().
		CreateAuthentication(mock.Anything, mock.MatchedBy(func(auth *entity.Authentication) bool {
			return auth.UserID == newID && auth.Provider == entity.ProviderTypeGoogle && auth.ProviderUserID == "google-sub"
		})).
		Return(nil)
	fx.tokenService.EXPECT().GenerateTokens(newID, []string{"user"}).Return("access-token", "refresh-token", nil)
	fx.expectSessionStored(fx.tx.refresh, newID)
	fx.expectUserCountsInvalidated()

	output, err := fx.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, "bob", output.User.Name)
	require.NotNil(t, output.User.Avatar)
	assert.Equal(t, "https://example.com/bob.png", *output.User.Avatar)
}

func TestUserService_GoogleCallback_LinksVerifiedEmail(t *testing.T) {
	fx := createTestUserService(t, 0)

	existing := &entity.User{ID: uuid.New(), Email: "bob@example.com", Name: "Bob", Role: entity.RoleUser}
	oauthUser := &service.OAuthUser{ID: "google-sub", Email: "bob@example.com", EmailVerified: true}

	fx.googleAuthService.EXPECT().VerifyIDToken(mock.Anything, "id-token").Return(oauthUser, nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.auth.EXPECT().FindAuthentication(mock.Anything, entity.ProviderTypeGoogle, "google-sub").Return(nil, repository.ErrAuthNotFound)
	fx.tx.user.EXPECT().FindByEmail(mock.Anything, "bob@example.com").Return(existing, nil)
	fx.tx.auth.EXPECT().CreateAuthentication(mock.Anything, mock.AnythingOfType("*entity.Authentication")).Return(nil)
	fx.tokenService.EXPECT().GenerateTokens(existing.ID, []string{"user"}).Return("access-token", "refresh-token", nil)
	fx.expectSessionStored(fx.tx.refresh, existing.ID)

	output, err := fx.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, existing, output.User)
}

func TestUserService_GoogleCallback_UnverifiedEmailNotLinked(t *testing.T) {
	fx := createTestUserService(t, 0)

	oauthUser := &service.OAuthUser{ID: "google-sub", Email: "bob@example.com", EmailVerified: false}

	fx.googleAuthService.EXPECT().VerifyIDToken(mock.Anything, "id-token").Return(oauthUser, nil)
	expectTx(fx.txManager, fx.tx)
	fx.tx.auth.EXPECT().FindAuthentication(mock.Anything, entity.ProviderTypeGoogle, "google-sub").Return(nil, repository.ErrAuthNotFound)
	fx.tx.user.EXPECT().FindByEmail(mock.Anything, "bob@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{IDToken: "id-token"})

	assert.True(t, errors.Is(err, domainerrors.ErrOAuthFailed))
}

func TestUserService_GoogleCallback_InvalidToken(t *testing.T) {
	fx := createTestUserService(t, 0)

	fx.googleAuthService.EXPECT().VerifyIDToken(mock.Anything, "bad").Return(nil, errors.New("audience mismatch"))

	_, err := fx.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{IDToken: "bad"})

	assert.True(t, errors.Is(err, domainerrors.ErrOAuthTokenInvalid))
}

func TestUserService_LogoutAllDevices(t *testing.T) {
	fx := createTestUserService(t, 0)

	userID := uuid.New()
	fx.refreshTokenRepo.EXPECT().DeleteRefreshTokensByUserID(mock.Anything, userID).Return(nil)

	require.NoError(t, fx.service.LogoutAllDevices(context.Background(), userID))
	assert.True(t, errors.Is(fx.service.LogoutAllDevices(context.Background(), uuid.Nil), domainerrors.ErrUnauthenticated))
}
