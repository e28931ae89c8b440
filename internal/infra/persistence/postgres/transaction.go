package postgres

import (
	"context"

	"foodie/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &txManager{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise, including on
// panic. fn's error is returned unwrapped so callers can match domain errors.
func (m *txManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	var fnErr error
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepos{tx: tx})

		return fnErr
	})
	switch {
	case fnErr != nil:
		return fnErr
	case err != nil:
		return errors.Wrap(err, "transaction failed")
	}

	return nil
}

// txRepos hands out repositories that share one transaction.
type txRepos struct {
	tx *gorm.DB
}

func (r txRepos) UserRepo() repository.UserRepository {
	return NewUserRepository(r.tx)
}

func (r txRepos) AuthRepo() repository.AuthRepository {
	return NewAuthRepository(r.tx)
}

func (r txRepos) RefreshTokenRepo() repository.RefreshTokenRepository {
	return NewRefreshTokenRepository(r.tx)
}

func (r txRepos) RestaurantRepo() repository.RestaurantRepository {
	return NewRestaurantRepository(r.tx)
}

func (r txRepos) CartRepo() repository.CartRepository {
	return NewCartRepository(r.tx)
}

func (r txRepos) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(r.tx)
}
