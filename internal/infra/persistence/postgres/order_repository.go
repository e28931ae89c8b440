package postgres

import (
	"context"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"
	"foodie/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrderItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.created_at ASC, order_items.id ASC")
}

// CreateOrder persists the order and its items in one call, filling in generated IDs.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit("User").Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range order.Items {
		if i < len(orderM.Items) {
			order.Items[i].ID = orderM.Items[i].ID
			order.Items[i].OrderID = orderM.ID
			order.Items[i].CreatedAt = orderM.Items[i].CreatedAt
		}
	}

	return nil
}

// FindOrderByID returns an order with its items.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	err := repo.db.WithContext(ctx).
		Preload("Items", preloadOrderItems).
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByUser returns the user's orders with items, newest first.
func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return repo.findOrders(ctx, repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

// ListOrders returns every order with items, newest first.
func (repo *orderRepository) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return repo.findOrders(ctx, repo.db.WithContext(ctx))
}

func (repo *orderRepository) findOrders(_ context.Context, query *gorm.DB) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	err := query.
		Preload("Items", preloadOrderItems).
		Order("created_at DESC, id DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus is a compare-and-set on the status column. When no row
// matches, the order is either missing or was moved by someone else.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidStatusTransition
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrOrderStatusConflict
}

// Totals returns the order count and the revenue over all orders.
func (repo *orderRepository) Totals(ctx context.Context) (*repository.OrderTotals, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}

	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate orders")
	}

	return &repository.OrderTotals{Count: row.Count, Revenue: row.Revenue}, nil
}

// RecordStatusChange inserts a timeline step, ignoring one already recorded.
func (repo *orderRepository) RecordStatusChange(ctx context.Context, change *entity.OrderStatusChange) error {
	historyM := &model.OrderStatusHistoryModel{
		OrderID:    change.OrderID,
		FromStatus: string(change.From),
		ToStatus:   string(change.To),
		ChangedAt:  change.ChangedAt,
	}

	err := repo.db.WithContext(ctx).
		Omit("Order").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "to_status"}},
			DoNothing: true,
		}).
		Create(historyM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record order status change")
	}

	return nil
}

// FindStatusChanges returns the order's timeline, oldest first.
func (repo *orderRepository) FindStatusChanges(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderStatusChange, error) {
	var historyModels []*model.OrderStatusHistoryModel

	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at ASC, id ASC").
		Find(&historyModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order status changes")
	}

	changes := make([]*entity.OrderStatusChange, 0, len(historyModels))
	for _, historyM := range historyModels {
		changes = append(changes, &entity.OrderStatusChange{
			OrderID:   historyM.OrderID,
			From:      entity.OrderStatus(historyM.FromStatus),
			To:        entity.OrderStatus(historyM.ToStatus),
			ChangedAt: historyM.ChangedAt,
		})
	}

	return changes, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:            itemM.ID,
			OrderID:       itemM.OrderID,
			MenuItemID:    itemM.MenuItemID,
			MenuItemName:  itemM.MenuItemName,
			MenuItemPrice: itemM.MenuItemPrice,
			Quantity:      itemM.Quantity,
			CreatedAt:     itemM.CreatedAt,
		})
	}

	return &entity.Order{
		ID:                    data.ID,
		UserID:                data.UserID,
		RestaurantID:          data.RestaurantID,
		RestaurantName:        data.RestaurantName,
		Status:                entity.OrderStatus(data.Status),
		Items:                 items,
		Total:                 data.Total,
		DeliveryFee:           data.DeliveryFee,
		EstimatedDeliveryTime: data.EstimatedDeliveryTime,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:            item.ID,
			OrderID:       item.OrderID,
			MenuItemID:    item.MenuItemID,
			MenuItemName:  item.MenuItemName,
			MenuItemPrice: item.MenuItemPrice,
			Quantity:      item.Quantity,
		})
	}

	return &model.OrderModel{
		ID:                    data.ID,
		UserID:                data.UserID,
		RestaurantID:          data.RestaurantID,
		RestaurantName:        data.RestaurantName,
		Status:                string(data.Status),
		Total:                 data.Total,
		DeliveryFee:           data.DeliveryFee,
		EstimatedDeliveryTime: data.EstimatedDeliveryTime,
		Items:                 items,
	}
}
