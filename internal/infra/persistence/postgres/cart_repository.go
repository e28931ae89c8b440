package postgres

import (
	"context"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindCartByUser returns the user's cart with each line's menu item loaded, in insertion order.
func (repo *cartRepository) FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return loadCart(repo.db.WithContext(ctx), userID)
}

// LockCartByUser reads the cart like FindCartByUser and holds row locks on its
// lines until the transaction ends. A concurrent checkout of the same cart
// waits, then sees the lines already gone.
func (repo *cartRepository) LockCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return loadCart(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), userID)
}

func loadCart(db *gorm.DB, userID uuid.UUID) (*entity.Cart, error) {
	var itemModels []*model.CartItemModel

	err := db.
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart := &entity.Cart{
		UserID: userID,
		Items:  make([]entity.CartItem, 0, len(itemModels)),
	}
	for _, itemM := range itemModels {
		// Rows whose menu item vanished between statements are skipped.
		if itemM.MenuItem == nil {
			continue
		}
		cart.Items = append(cart.Items, toCartItemDomain(itemM))
	}

	return cart, nil
}

// AddItem upserts the (user, menu item) row. On conflict the stored quantity
// is incremented in the same statement, so concurrent adds are not lost.
func (repo *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	err := repo.db.WithContext(ctx).
		Omit("User", "MenuItem").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(itemM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrMenuItemNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add cart item")
	}

	item.ID = itemM.ID

	return nil
}

// UpdateQuantity overwrites the quantity of an existing row.
func (repo *cartRepository) UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Update("quantity", quantity)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidQuantity
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes the row for a menu item. Missing rows are not an error.
func (repo *cartRepository) RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&model.CartItemModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove cart item")
	}

	return nil
}

// ClearByUser deletes every row of the user's cart.
func (repo *cartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

func toCartItemDomain(data *model.CartItemModel) entity.CartItem {
	item := entity.CartItem{
		ID:             data.ID,
		UserID:         data.UserID,
		Quantity:       data.Quantity,
		RestaurantID:   data.RestaurantID,
		RestaurantName: data.RestaurantName,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.MenuItem != nil {
		item.MenuItem = toMenuItemDomain(data.MenuItem)
	}

	return item
}

func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	return &model.CartItemModel{
		ID:             data.ID,
		UserID:         data.UserID,
		MenuItemID:     data.MenuItem.ID,
		RestaurantID:   data.RestaurantID,
		RestaurantName: data.RestaurantName,
		Quantity:       data.Quantity,
	}
}
