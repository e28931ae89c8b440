package main

import (
	"foodie/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.RestaurantModel{},
		model.MenuItemModel{},
		model.CategoryModel{},
		model.CartItemModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.OrderStatusHistoryModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
