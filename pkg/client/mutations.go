package client

import (
	"context"
	"net/http"

	"foodie/pkg/apimodel"

	"github.com/google/uuid"
)

// Writes return their errors. After a successful write the affected queries
// are invalidated and refetched on the next read; cached collections are
// never patched in place.

func (c *Client) requireSession() (string, error) {
	scope, ok := c.userScope()
	if !ok {
		return "", ErrNotSignedIn
	}

	return scope, nil
}

func (c *Client) cartKey(scope string) QueryKey {
	return QueryKey{EntityCart, scope}
}

// UpdateProfile changes the signed-in user's name and/or avatar. Nil fields
// keep their stored value.
func (c *Client) UpdateProfile(ctx context.Context, name, avatar *string) (*apimodel.User, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var user apimodel.User
	req := &apimodel.UpdateProfileRequest{Name: name, Avatar: avatar}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/me", req, &user); err != nil {
		return nil, err
	}

	// Same account, so cached queries stay valid.
	c.mu.Lock()
	c.session.user = &user
	state := c.session
	c.mu.Unlock()

	c.saveSnapshot(state)

	return c.CurrentUser(), nil
}

// AddToCart adds quantity of a menu item, merging with an existing line.
func (c *Client) AddToCart(ctx context.Context, menuItemID uuid.UUID, quantity int) error {
	scope, err := c.requireSession()
	if err != nil {
		return err
	}

	req := &apimodel.AddCartItemRequest{MenuItemID: menuItemID, Quantity: quantity}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cart/items", req, nil); err != nil {
		return err
	}
	c.cache.invalidate(c.cartKey(scope))

	return nil
}

// UpdateQuantity overwrites a line's quantity. Zero or less removes the line.
func (c *Client) UpdateQuantity(ctx context.Context, menuItemID uuid.UUID, quantity int) error {
	scope, err := c.requireSession()
	if err != nil {
		return err
	}

	req := &apimodel.UpdateCartItemRequest{Quantity: quantity}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/cart/items/"+menuItemID.String(), req, nil); err != nil {
		return err
	}
	c.cache.invalidate(c.cartKey(scope))

	return nil
}

// RemoveFromCart deletes a line.
func (c *Client) RemoveFromCart(ctx context.Context, menuItemID uuid.UUID) error {
	scope, err := c.requireSession()
	if err != nil {
		return err
	}

	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/cart/items/"+menuItemID.String(), nil, nil); err != nil {
		return err
	}
	c.cache.invalidate(c.cartKey(scope))

	return nil
}

// ClearCart deletes every line.
func (c *Client) ClearCart(ctx context.Context) error {
	scope, err := c.requireSession()
	if err != nil {
		return err
	}

	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/cart", nil, nil); err != nil {
		return err
	}
	c.cache.invalidate(c.cartKey(scope))

	return nil
}

// PlaceOrder checks out the cart, one order per restaurant. An empty cart
// yields no orders.
func (c *Client) PlaceOrder(ctx context.Context) ([]apimodel.Order, error) {
	scope, err := c.requireSession()
	if err != nil {
		return nil, err
	}

	var orders []apimodel.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/orders", nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []apimodel.Order{}
	}

	c.cache.invalidate(
		c.cartKey(scope),
		QueryKey{EntityOrders, scope},
		QueryKey{EntityAdminOrders, ScopeAll},
		QueryKey{EntityAdminStats, ScopeAll},
	)

	return orders, nil
}

// Order fetches one of the user's orders.
func (c *Client) Order(ctx context.Context, orderID uuid.UUID) (*apimodel.Order, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var order apimodel.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// TrackingQR returns the PNG tracking code of one of the user's orders.
func (c *Client) TrackingQR(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	return c.doRaw(ctx, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/qr")
}

// CreateRestaurantInput is the admin form for a new restaurant.
type CreateRestaurantInput = apimodel.CreateRestaurantRequest

// CreateMenuItemInput is the admin form for a new menu item.
type CreateMenuItemInput = apimodel.CreateMenuItemRequest

func (c *Client) invalidateCatalog(restaurantID uuid.UUID) {
	c.cache.invalidate(
		QueryKey{EntityRestaurants, ScopeAll},
		QueryKey{EntityRestaurant, restaurantID.String()},
		QueryKey{EntityAdminRestaurants, ScopeAll},
		QueryKey{EntityAdminStats, ScopeAll},
	)
}

// CreateRestaurant adds a restaurant. Admin only.
func (c *Client) CreateRestaurant(ctx context.Context, input *CreateRestaurantInput) (*apimodel.Restaurant, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var restaurant apimodel.Restaurant
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/admin/restaurants", input, &restaurant); err != nil {
		return nil, err
	}
	c.invalidateCatalog(restaurant.ID)

	return &restaurant, nil
}

// DeleteRestaurant removes a restaurant and its menu. Admin only.
func (c *Client) DeleteRestaurant(ctx context.Context, restaurantID uuid.UUID) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/admin/restaurants/"+restaurantID.String(), nil, nil); err != nil {
		return err
	}
	c.invalidateCatalog(restaurantID)

	return nil
}

// AddMenuItem adds a dish to a restaurant's menu. Admin only.
func (c *Client) AddMenuItem(ctx context.Context, restaurantID uuid.UUID, input *CreateMenuItemInput) (*apimodel.MenuItem, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var item apimodel.MenuItem
	path := "/api/v1/admin/restaurants/" + restaurantID.String() + "/menu-items"
	if err := c.doJSON(ctx, http.MethodPost, path, input, &item); err != nil {
		return nil, err
	}
	c.invalidateCatalog(restaurantID)

	return &item, nil
}

// UpdateOrderStatus advances an order one step. Admin only; the server
// rejects any other transition.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*apimodel.Order, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var order apimodel.Order
	req := &apimodel.UpdateOrderStatusRequest{Status: status}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", req, &order); err != nil {
		return nil, err
	}

	c.cache.invalidate(
		QueryKey{EntityAdminOrders, ScopeAll},
		QueryKey{EntityOrders, order.UserID.String()},
	)

	return &order, nil
}

// UpdateUserRole sets a user's role to "user" or "admin". Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, userID uuid.UUID, role string) (*apimodel.User, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	var user apimodel.User
	req := &apimodel.UpdateUserRoleRequest{Role: role}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/admin/users/"+userID.String()+"/role", req, &user); err != nil {
		return nil, err
	}
	c.cache.invalidate(QueryKey{EntityAdminUsers, ScopeAll})

	return &user, nil
}
