package handler

import (
	"foodie/internal/domain/entity"
	"foodie/internal/usecase"
	"foodie/pkg/apimodel"
)

func toUser(u *entity.User) *apimodel.User {
	if u == nil {
		return nil
	}

	return &apimodel.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func toUsers(users []*entity.User) []*apimodel.User {
	out := make([]*apimodel.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}

	return out
}

func toSession(output *usecase.LoginOutput) *apimodel.Session {
	return &apimodel.Session{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUser(output.User),
	}
}

func toMenuItem(m entity.MenuItem) apimodel.MenuItem {
	return apimodel.MenuItem{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Image:        m.Image,
		Category:     m.Category,
	}
}

func toRestaurant(r *entity.Restaurant) *apimodel.Restaurant {
	menu := make([]apimodel.MenuItem, 0, len(r.Menu))
	for _, m := range r.Menu {
		menu = append(menu, toMenuItem(m))
	}

	categories := r.Categories
	if categories == nil {
		categories = []string{}
	}

	return &apimodel.Restaurant{
		ID:           r.ID,
		Name:         r.Name,
		Image:        r.Image,
		Rating:       r.Rating,
		DeliveryTime: r.DeliveryTime,
		DeliveryFee:  r.DeliveryFee,
		Categories:   categories,
		Menu:         menu,
	}
}

func toRestaurants(restaurants []*entity.Restaurant) []*apimodel.Restaurant {
	out := make([]*apimodel.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toRestaurant(r))
	}

	return out
}

func toCategories(categories []*entity.Category) []apimodel.Category {
	out := make([]apimodel.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, apimodel.Category{ID: c.ID, Name: c.Name, Image: c.Image})
	}

	return out
}

func toCart(cart *entity.Cart) *apimodel.Cart {
	items := make([]apimodel.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, apimodel.CartItem{
			MenuItem:       toMenuItem(item.MenuItem),
			Quantity:       item.Quantity,
			RestaurantID:   item.RestaurantID,
			RestaurantName: item.RestaurantName,
		})
	}

	return &apimodel.Cart{
		Items:     items,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}
}

func toOrder(o *entity.Order) *apimodel.Order {
	items := make([]apimodel.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, apimodel.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.MenuItemName,
			Price:      item.MenuItemPrice,
			Quantity:   item.Quantity,
		})
	}

	return &apimodel.Order{
		ID:                    o.ID,
		UserID:                o.UserID,
		RestaurantID:          o.RestaurantID,
		RestaurantName:        o.RestaurantName,
		Status:                o.Status.String(),
		Items:                 items,
		Total:                 o.Total,
		DeliveryFee:           o.DeliveryFee,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		CreatedAt:             o.CreatedAt,
	}
}

func toOrders(orders []*entity.Order) []*apimodel.Order {
	out := make([]*apimodel.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}

	return out
}

func toTimeline(changes []*entity.OrderStatusChange) []apimodel.OrderStatusChange {
	out := make([]apimodel.OrderStatusChange, 0, len(changes))
	for _, change := range changes {
		out = append(out, apimodel.OrderStatusChange{
			From:      change.From.String(),
			To:        change.To.String(),
			ChangedAt: change.ChangedAt,
		})
	}

	return out
}
