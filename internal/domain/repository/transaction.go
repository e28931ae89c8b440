// Package repository declares the storage ports the use cases depend on.
package repository

import "context"

// TransactionManager runs fn inside one transaction. A nil return commits;
// an error or panic rolls back and the error is returned as is.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
// Checkout uses it so order creation and cart clearing commit together.
type RepositoryFactory interface {
	UserRepo() UserRepository
	AuthRepo() AuthRepository
	RefreshTokenRepo() RefreshTokenRepository
	RestaurantRepo() RestaurantRepository
	CartRepo() CartRepository
	OrderRepo() OrderRepository
}
