package impl

import (
	"context"
	"log/slog"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/domain/service"
	"foodie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo       repository.CartRepository
	restaurantRepo repository.RestaurantRepository
	cache          *queryCache
	logger         *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo       repository.CartRepository
	RestaurantRepo repository.RestaurantRepository
	Cache          service.QueryCache
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:       params.CartRepo,
		restaurantRepo: params.RestaurantRepo,
		cache:          newQueryCache(params.Cache, params.Config, params.Logger),
		logger:         params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart in insertion order.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	cart, err := fetch(ctx, srv.cache, userKey(service.CacheEntityCart, userID), func(ctx context.Context) (*entity.Cart, error) {
		cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart.Items == nil {
			cart.Items = []entity.CartItem{}
		}

		return cart, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}

	return cart, nil
}

// AddToCart adds quantity units of a menu item. The restaurant on the line is
// taken from the stored menu item, never from the caller.
func (srv *cartService) AddToCart(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}
	if quantity < 1 {
		return domainerrors.ErrInvalidQuantity
	}
	srv.log(ctx).Debug("Adding to cart", slog.Any("userID", userID), slog.Any("menuItemID", menuItemID), slog.Int("quantity", quantity))

	menuItem, err := srv.restaurantRepo.FindMenuItemByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return errors.Wrap(domainerrors.ErrMenuItemNotFound, menuItemID.String())
		}

		return errors.Wrap(err, "failed to find menu item")
	}

	restaurant, err := srv.restaurantRepo.FindRestaurantByID(ctx, menuItem.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item has no restaurant")
		}

		return errors.Wrap(err, "failed to find restaurant")
	}

	line := &entity.CartItem{
		UserID:         userID,
		MenuItem:       *menuItem,
		Quantity:       quantity,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
	}
	if err := srv.cartRepo.AddItem(ctx, line); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return errors.Wrap(domainerrors.ErrMenuItemNotFound, menuItemID.String())
		}

		return errors.Wrap(err, "failed to add cart item")
	}

	srv.cache.invalidate(ctx, userKey(service.CacheEntityCart, userID))

	return nil
}

// UpdateQuantity overwrites a line's quantity. A quantity of zero or less removes the line.
func (srv *cartService) UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}
	if quantity <= 0 {
		return srv.RemoveFromCart(ctx, userID, menuItemID)
	}

	if err := srv.cartRepo.UpdateQuantity(ctx, userID, menuItemID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return errors.Wrap(domainerrors.ErrCartItemNotFound, menuItemID.String())
		}

		return errors.Wrap(err, "failed to update cart item")
	}

	srv.cache.invalidate(ctx, userKey(service.CacheEntityCart, userID))

	return nil
}

// RemoveFromCart deletes a line. Removing a missing line succeeds.
func (srv *cartService) RemoveFromCart(ctx context.Context, userID, menuItemID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}

	if err := srv.cartRepo.RemoveItem(ctx, userID, menuItemID); err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	srv.cache.invalidate(ctx, userKey(service.CacheEntityCart, userID))

	return nil
}

// ClearCart empties the user's cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthenticated
	}

	if err := srv.cartRepo.ClearByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	srv.cache.invalidate(ctx, userKey(service.CacheEntityCart, userID))

	return nil
}
