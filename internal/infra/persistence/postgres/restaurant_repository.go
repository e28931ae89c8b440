package postgres

import (
	"context"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// restaurantRepository implements the repository.RestaurantRepository interface.
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository is the constructor for restaurantRepository.
func NewRestaurantRepository(db *gorm.DB) repository.RestaurantRepository {
	return &restaurantRepository{db: db}
}

func preloadMenu(db *gorm.DB) *gorm.DB {
	return db.Order("menu_items.created_at ASC, menu_items.id ASC")
}

// ListRestaurants returns every restaurant with its menu, newest first.
func (repo *restaurantRepository) ListRestaurants(ctx context.Context) ([]*entity.Restaurant, error) {
	var restaurantModels []*model.RestaurantModel

	err := repo.db.WithContext(ctx).
		Preload("MenuItems", preloadMenu).
		Order("created_at DESC").
		Find(&restaurantModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restaurants")
	}

	restaurants := make([]*entity.Restaurant, 0, len(restaurantModels))
	for _, restaurantM := range restaurantModels {
		restaurants = append(restaurants, toRestaurantDomain(restaurantM))
	}

	return restaurants, nil
}

// FindRestaurantByID returns one restaurant with its menu.
func (repo *restaurantRepository) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurantM model.RestaurantModel

	err := repo.db.WithContext(ctx).
		Preload("MenuItems", preloadMenu).
		Where("id = ?", id).
		First(&restaurantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRestaurantNotFound
		}

		return nil, errors.Wrap(err, "failed to find restaurant")
	}

	return toRestaurantDomain(&restaurantM), nil
}

// CreateRestaurant persists a restaurant and fills in its ID.
func (repo *restaurantRepository) CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error {
	restaurantM := fromRestaurantDomain(restaurant)

	if err := repo.db.WithContext(ctx).Omit("MenuItems").Create(restaurantM).Error; err != nil {
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid restaurant fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create restaurant")
	}

	restaurant.ID = restaurantM.ID
	restaurant.CreatedAt = restaurantM.CreatedAt
	restaurant.UpdatedAt = restaurantM.UpdatedAt

	return nil
}

// DeleteRestaurant removes a restaurant. Menu items and the cart rows that
// reference them go with it through ON DELETE CASCADE.
func (repo *restaurantRepository) DeleteRestaurant(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var cartOwners []uuid.UUID

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking the menu blocks cart inserts that reference it until commit,
		// so the owners read below are all the carts the cascade touches.
		var menuItemIDs []uuid.UUID
		if err := tx.Model(&model.MenuItemModel{}).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("restaurant_id = ?", id).
			Pluck("id", &menuItemIDs).Error; err != nil {
			return errors.Wrap(err, "failed to lock menu items")
		}

		if err := tx.Model(&model.CartItemModel{}).
			Distinct().
			Where("restaurant_id = ?", id).
			Pluck("user_id", &cartOwners).Error; err != nil {
			return errors.Wrap(err, "failed to find carts of restaurant")
		}

		result := tx.Where("id = ?", id).Delete(&model.RestaurantModel{})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete restaurant")
		}
		if result.RowsAffected == 0 {
			return repository.ErrRestaurantNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cartOwners, nil
}

// CountRestaurants returns the number of restaurants.
func (repo *restaurantRepository) CountRestaurants(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).Model(&model.RestaurantModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count restaurants")
	}

	return count, nil
}

// FindMenuItemByID returns a single menu item.
func (repo *restaurantRepository) FindMenuItemByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item")
	}

	item := toMenuItemDomain(&itemM)

	return &item, nil
}

// CreateMenuItem adds a dish to a restaurant's menu.
func (repo *restaurantRepository) CreateMenuItem(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRestaurantNotFound
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid menu item fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create menu item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// ListCategories returns the browsing categories by name.
func (repo *restaurantRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel

	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, &entity.Category{
			ID:        categoryM.ID,
			Name:      categoryM.Name,
			Image:     categoryM.Image,
			CreatedAt: categoryM.CreatedAt,
		})
	}

	return categories, nil
}

// --- Mapper Functions ---

func toRestaurantDomain(data *model.RestaurantModel) *entity.Restaurant {
	if data == nil {
		return nil
	}

	menu := make([]entity.MenuItem, 0, len(data.MenuItems))
	for i := range data.MenuItems {
		menu = append(menu, toMenuItemDomain(&data.MenuItems[i]))
	}

	categories := make([]string, len(data.Categories))
	copy(categories, data.Categories)

	return &entity.Restaurant{
		ID:           data.ID,
		Name:         data.Name,
		Image:        data.Image,
		Rating:       data.Rating,
		DeliveryTime: data.DeliveryTime,
		DeliveryFee:  data.DeliveryFee,
		Categories:   categories,
		Menu:         menu,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromRestaurantDomain(data *entity.Restaurant) *model.RestaurantModel {
	if data == nil {
		return nil
	}

	categories := pq.StringArray{}
	if len(data.Categories) > 0 {
		categories = append(categories, data.Categories...)
	}

	return &model.RestaurantModel{
		ID:           data.ID,
		Name:         data.Name,
		Image:        data.Image,
		Rating:       data.Rating,
		DeliveryTime: data.DeliveryTime,
		DeliveryFee:  data.DeliveryFee,
		Categories:   categories,
	}
}

func toMenuItemDomain(data *model.MenuItemModel) entity.MenuItem {
	return entity.MenuItem{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		Image:        data.Image,
		Category:     data.Category,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromMenuItemDomain(data *entity.MenuItem) *model.MenuItemModel {
	return &model.MenuItemModel{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		Image:        data.Image,
		Category:     data.Category,
	}
}
