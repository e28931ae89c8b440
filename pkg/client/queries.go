package client

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"foodie/internal/domain/entity"
	"foodie/pkg/apimodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read methods never fail: a failed fetch is logged and shows up as an empty
// collection. Reads that need a session return empty when signed out.

func (c *Client) degrade(key QueryKey, err error) {
	c.logger.Warn("Query failed, serving empty result",
		slog.String("query", key.String()),
		slog.Any("error", err),
	)
}

func getList[T any](ctx context.Context, c *Client, key QueryKey, path string) []T {
	items, err := query(ctx, c.cache, key, func(ctx context.Context) ([]T, error) {
		var out []T
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []T{}
		}

		return out, nil
	})
	if err != nil {
		c.degrade(key, err)

		return []T{}
	}

	return slices.Clone(items)
}

// Restaurants lists restaurants with their menus.
func (c *Client) Restaurants(ctx context.Context) []apimodel.Restaurant {
	return getList[apimodel.Restaurant](ctx, c, QueryKey{EntityRestaurants, ScopeAll}, "/api/v1/restaurants")
}

// SearchRestaurants narrows the cached restaurant list by a search query and
// an optional home-screen category, with the server's matching rules. It
// shares the Restaurants cache entry and degrades the same way.
func (c *Client) SearchRestaurants(ctx context.Context, search, category string) []apimodel.Restaurant {
	filter := entity.RestaurantFilter{Query: search, Category: category}
	restaurants := c.Restaurants(ctx)
	if filter.IsZero() {
		return restaurants
	}

	matched := make([]apimodel.Restaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		if filter.Match(searchable(restaurant)) {
			matched = append(matched, restaurant)
		}
	}

	return matched
}

// searchable carries the fields RestaurantFilter matches on.
func searchable(r apimodel.Restaurant) *entity.Restaurant {
	menu := make([]entity.MenuItem, 0, len(r.Menu))
	for _, item := range r.Menu {
		menu = append(menu, entity.MenuItem{Name: item.Name, Description: item.Description, Category: item.Category})
	}

	return &entity.Restaurant{Name: r.Name, Categories: r.Categories, Menu: menu}
}

// Restaurant fetches one restaurant. Unlike the collection reads it returns
// failures, a missing restaurant being an *APIError with status 404.
func (c *Client) Restaurant(ctx context.Context, id uuid.UUID) (*apimodel.Restaurant, error) {
	restaurant, err := query(ctx, c.cache, QueryKey{EntityRestaurant, id.String()}, func(ctx context.Context) (*apimodel.Restaurant, error) {
		var out apimodel.Restaurant
		if err := c.doJSON(ctx, http.MethodGet, "/api/v1/restaurants/"+id.String(), nil, &out); err != nil {
			return nil, err
		}

		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	clone := *restaurant

	return &clone, nil
}

// Categories lists the browsing categories.
func (c *Client) Categories(ctx context.Context) []apimodel.Category {
	return getList[apimodel.Category](ctx, c, QueryKey{EntityCategories, ScopeAll}, "/api/v1/categories")
}

// Cart returns the signed-in user's cart.
func (c *Client) Cart(ctx context.Context) apimodel.Cart {
	scope, ok := c.userScope()
	if !ok {
		return apimodel.Cart{Items: []apimodel.CartItem{}}
	}

	key := QueryKey{EntityCart, scope}
	cart, err := query(ctx, c.cache, key, func(ctx context.Context) (apimodel.Cart, error) {
		var out apimodel.Cart
		if err := c.doJSON(ctx, http.MethodGet, "/api/v1/cart", nil, &out); err != nil {
			return apimodel.Cart{}, err
		}
		if out.Items == nil {
			out.Items = []apimodel.CartItem{}
		}

		return out, nil
	})
	if err != nil {
		c.degrade(key, err)

		return apimodel.Cart{Items: []apimodel.CartItem{}}
	}
	cart.Items = slices.Clone(cart.Items)

	return cart
}

// CartTotal sums price × quantity over the cached cart without a request.
// It is zero when the cart has not been read yet.
func (c *Client) CartTotal() decimal.Decimal {
	scope, ok := c.userScope()
	if !ok {
		return decimal.Zero
	}

	cached, _, found := c.cache.get(QueryKey{EntityCart, scope})
	if !found {
		return decimal.Zero
	}
	cart, isCart := cached.(apimodel.Cart)
	if !isCart {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.MenuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// Orders lists the signed-in user's orders, newest first.
func (c *Client) Orders(ctx context.Context) []apimodel.Order {
	scope, ok := c.userScope()
	if !ok {
		return []apimodel.Order{}
	}

	return getList[apimodel.Order](ctx, c, QueryKey{EntityOrders, scope}, "/api/v1/orders")
}

// OrderTimeline lists the recorded status steps of one order. It is not cached.
func (c *Client) OrderTimeline(ctx context.Context, orderID uuid.UUID) []apimodel.OrderStatusChange {
	if _, ok := c.userScope(); !ok {
		return []apimodel.OrderStatusChange{}
	}

	var out []apimodel.OrderStatusChange
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/timeline", nil, &out); err != nil {
		c.degrade(QueryKey{"order-timeline", orderID.String()}, err)

		return []apimodel.OrderStatusChange{}
	}
	if out == nil {
		out = []apimodel.OrderStatusChange{}
	}

	return out
}

// AdminStats returns the dashboard figures, or zeros when unavailable.
func (c *Client) AdminStats(ctx context.Context) apimodel.DashboardStats {
	if _, ok := c.userScope(); !ok {
		return apimodel.DashboardStats{}
	}

	key := QueryKey{EntityAdminStats, ScopeAll}
	stats, err := query(ctx, c.cache, key, func(ctx context.Context) (apimodel.DashboardStats, error) {
		var out apimodel.DashboardStats
		err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &out)

		return out, err
	})
	if err != nil {
		c.degrade(key, err)

		return apimodel.DashboardStats{}
	}

	return stats
}

// AdminRestaurants lists restaurants for the back-office.
func (c *Client) AdminRestaurants(ctx context.Context) []apimodel.Restaurant {
	if _, ok := c.userScope(); !ok {
		return []apimodel.Restaurant{}
	}

	return getList[apimodel.Restaurant](ctx, c, QueryKey{EntityAdminRestaurants, ScopeAll}, "/api/v1/admin/restaurants")
}

// AdminOrders lists every order, newest first.
func (c *Client) AdminOrders(ctx context.Context) []apimodel.Order {
	if _, ok := c.userScope(); !ok {
		return []apimodel.Order{}
	}

	return getList[apimodel.Order](ctx, c, QueryKey{EntityAdminOrders, ScopeAll}, "/api/v1/admin/orders")
}

// AdminUsers lists every account.
func (c *Client) AdminUsers(ctx context.Context) []apimodel.User {
	if _, ok := c.userScope(); !ok {
		return []apimodel.User{}
	}

	return getList[apimodel.User](ctx, c, QueryKey{EntityAdminUsers, ScopeAll}, "/api/v1/admin/users")
}
