package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"foodie/config"
	"foodie/internal/domain/repository"
	mockRepo "foodie/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxActiveSessions int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			MaxActiveSessions: maxActiveSessions,
		},
		Cache: &config.CacheConfig{
			Provider: "memory",
			TTL:      time.Minute,
		},
		Checkout: &config.CheckoutConfig{
			DeliveryFee:           "2.99",
			EstimatedDeliveryTime: "30-45 min",
		},
	}
}

// txRepos are the repositories handed out by a mocked transaction.
type txRepos struct {
	factory    *mockRepo.MockRepositoryFactory
	user       *mockRepo.MockUserRepository
	auth       *mockRepo.MockAuthRepository
	refresh    *mockRepo.MockRefreshTokenRepository
	restaurant *mockRepo.MockRestaurantRepository
	cart       *mockRepo.MockCartRepository
	order      *mockRepo.MockOrderRepository
}

func newTxRepos(t *testing.T) *txRepos {
	repos := &txRepos{
		factory:    mockRepo.NewMockRepositoryFactory(t),
		user:       mockRepo.NewMockUserRepository(t),
		auth:       mockRepo.NewMockAuthRepository(t),
		refresh:    mockRepo.NewMockRefreshTokenRepository(t),
		restaurant: mockRepo.NewMockRestaurantRepository(t),
		cart:       mockRepo.NewMockCartRepository(t),
		order:      mockRepo.NewMockOrderRepository(t),
	}

	repos.factory.EXPECT().UserRepo().Return(repos.user).Maybe()
	repos.factory.EXPECT().AuthRepo().Return(repos.auth).Maybe()
	repos.factory.EXPECT().RefreshTokenRepo().Return(repos.refresh).Maybe()
	repos.factory.EXPECT().RestaurantRepo().Return(repos.restaurant).Maybe()
	repos.factory.EXPECT().CartRepo().Return(repos.cart).Maybe()
	repos.factory.EXPECT().OrderRepo().Return(repos.order).Maybe()

	return repos
}

// expectTx makes txManager run the callback against repos and return its error,
// the way the real manager commits or rolls back.
func expectTx(txManager *mockRepo.MockTransactionManager, repos *txRepos) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(repos.factory)
		})
}
