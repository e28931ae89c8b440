package postgres

import (
	"context"
	"regexp"
	"testing"

	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens gorm's postgres dialect over a sqlmock connection so tests
// can assert the SQL each repository method sends.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestCartRepository_AddItem_IncrementsOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	rowID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(
		`ON CONFLICT ("user_id","menu_item_id") DO UPDATE SET "quantity"=cart_items.quantity + EXCLUDED.quantity`,
	)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(rowID.String()))

	item := &entity.CartItem{
		UserID:         uuid.New(),
		MenuItem:       entity.MenuItem{ID: uuid.New()},
		RestaurantID:   uuid.New(),
		RestaurantName: "Thai Garden",
		Quantity:       2,
	}

	require.NoError(t, repo.AddItem(context.Background(), item))
	assert.Equal(t, rowID, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_AddItem_UnknownMenuItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cart_items"`)).
		WillReturnError(errors.New(`ERROR: insert or update on table "cart_items" violates foreign key constraint (SQLSTATE 23503)`))

	err := repo.AddItem(context.Background(), &entity.CartItem{
		UserID:   uuid.New(),
		MenuItem: entity.MenuItem{ID: uuid.New()},
		Quantity: 1,
	})

	assert.ErrorIs(t, err, repository.ErrMenuItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_LockCartByUser_SelectsForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = \$1 ORDER BY created_at ASC, id ASC FOR UPDATE`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "menu_item_id", "quantity"}))

	cart, err := repo.LockCartByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4`)
	countSQL := regexp.QuoteMeta(`SELECT count(*) FROM "orders" WHERE id = $1`)

	tests := []struct {
		name      string
		updated   int64
		count     int64
		wantCount bool
		wantErr   error
	}{
		{
			name:    "row updated",
			updated: 1,
		},
		{
			name:      "order missing",
			updated:   0,
			count:     0,
			wantCount: true,
			wantErr:   repository.ErrOrderNotFound,
		},
		{
			name:      "status moved concurrently",
			updated:   0,
			count:     1,
			wantCount: true,
			wantErr:   repository.ErrOrderStatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewOrderRepository(db)
			id := uuid.New()

			mock.ExpectExec(updateSQL).
				WithArgs(string(entity.OrderStatusPreparing), sqlmock.AnyArg(), id, string(entity.OrderStatusConfirmed)).
				WillReturnResult(sqlmock.NewResult(0, tt.updated))
			if tt.wantCount {
				mock.ExpectQuery(countSQL).
					WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))
			}

			err := repo.UpdateStatus(context.Background(), id, entity.OrderStatusConfirmed, entity.OrderStatusPreparing)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_UpdateStatus_CheckViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnError(errors.New(`ERROR: new row violates check constraint "chk_orders_status" (SQLSTATE 23514)`))

	err := repo.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatusConfirmed, entity.OrderStatus("cancelled"))

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatusTransition))
}

func TestRestaurantRepository_DeleteRestaurant(t *testing.T) {
	lockSQL := regexp.QuoteMeta(`SELECT "id" FROM "menu_items" WHERE restaurant_id = $1 FOR UPDATE`)
	ownersSQL := regexp.QuoteMeta(`SELECT DISTINCT "user_id" FROM "cart_items" WHERE restaurant_id = $1`)
	deleteSQL := regexp.QuoteMeta(`DELETE FROM "restaurants" WHERE id = $1`)

	t.Run("returns cart owners", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRestaurantRepository(db)
		id := uuid.New()
		alice, bob := uuid.New(), uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectQuery(ownersSQL).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(alice.String()).AddRow(bob.String()))
		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		owners, err := repo.DeleteRestaurant(context.Background(), id)

		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{alice, bob}, owners)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing restaurant rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRestaurantRepository(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(ownersSQL).WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		owners, err := repo.DeleteRestaurant(context.Background(), id)

		assert.ErrorIs(t, err, repository.ErrRestaurantNotFound)
		assert.Nil(t, owners)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
