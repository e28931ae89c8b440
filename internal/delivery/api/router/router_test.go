package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodie/config"
	apimiddleware "foodie/internal/delivery/api/middleware"
	"foodie/internal/delivery/api/router/handler"
	"foodie/internal/delivery/api/validator"
	"foodie/internal/domain/entity"
	domainerrors "foodie/internal/domain/errors"
	"foodie/internal/domain/service"
	mockSvc "foodie/internal/mocks/service"
	mockUC "foodie/internal/mocks/usecase"
	"foodie/internal/usecase"
	"foodie/pkg/apimodel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type routerFixtures struct {
	echo      *echo.Echo
	userID    uuid.UUID
	adminID   uuid.UUID
	userUC    *mockUC.MockUserUsecase
	profileUC *mockUC.MockProfileUsecase
	catalogUC *mockUC.MockCatalogUsecase
	cartUC    *mockUC.MockCartUsecase
	orderUC   *mockUC.MockOrderUsecase
	adminUC   *mockUC.MockAdminUsecase
}

func newRouterFixtures(t *testing.T, rateLimit *config.RateLimitConfig) routerFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx := routerFixtures{
		userID:    uuid.New(),
		adminID:   uuid.New(),
		userUC:    mockUC.NewMockUserUsecase(t),
		profileUC: mockUC.NewMockProfileUsecase(t),
		catalogUC: mockUC.NewMockCatalogUsecase(t),
		cartUC:    mockUC.NewMockCartUsecase(t),
		orderUC:   mockUC.NewMockOrderUsecase(t),
		adminUC:   mockUC.NewMockAdminUsecase(t),
	}

	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken(userToken).
		Return(&service.Claims{UserID: fx.userID, Roles: []string{"user"}, Type: service.TokenTypeAccess}, nil).Maybe()
	tokenSvc.EXPECT().ValidateToken(adminToken).
		Return(&service.Claims{UserID: fx.adminID, Roles: []string{"admin"}, Type: service.TokenTypeAccess}, nil).Maybe()

	if rateLimit == nil {
		rateLimit = &config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, ExpiresIn: time.Minute}
	}

	r := NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{UserUC: fx.userUC, Logger: logger}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{ProfileUC: fx.profileUC, Logger: logger}),
		CatalogHandler: handler.NewCatalogHandler(handler.CatalogHandlerParams{CatalogUC: fx.catalogUC, Logger: logger}),
		CartHandler:    handler.NewCartHandler(handler.CartHandlerParams{CartUC: fx.cartUC, Logger: logger}),
		OrderHandler:   handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: fx.orderUC, Logger: logger}),
		AdminHandler:   handler.NewAdminHandler(handler.AdminHandlerParams{AdminUC: fx.adminUC, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokenSvc, logger),
		Config:         &config.Config{RateLimit: rateLimit},
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	r.RegisterRoutes(e)
	fx.echo = e

	return fx
}

func (fx routerFixtures) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope apimodel.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())

	return envelope.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *apimodel.ErrorBody {
	t.Helper()

	var envelope apimodel.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.NotNil(t, envelope.Error)

	return envelope.Error
}

func TestRouter_Health(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	rec := fx.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeData[map[string]string](t, rec)["status"])
}

func TestRouter_PublicCatalog(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	restaurantID := uuid.New()
	fx.catalogUC.EXPECT().ListRestaurants(mock.Anything, entity.RestaurantFilter{}).Return([]*entity.Restaurant{{
		ID:          restaurantID,
		Name:        "Luigi's",
		DeliveryFee: decimal.RequireFromString("1.99"),
		Menu:        []entity.MenuItem{{ID: uuid.New(), RestaurantID: restaurantID, Name: "Margherita", Price: decimal.RequireFromString("12.50")}},
	}}, nil)

	rec := fx.do(http.MethodGet, "/api/v1/restaurants", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	restaurants := decodeData[[]apimodel.Restaurant](t, rec)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "Luigi's", restaurants[0].Name)
	assert.Equal(t, []string{}, restaurants[0].Categories)
	require.Len(t, restaurants[0].Menu, 1)
	assert.True(t, restaurants[0].Menu[0].Price.Equal(decimal.RequireFromString("12.50")))
}

func TestRouter_SearchRestaurants(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	fx.catalogUC.EXPECT().
		ListRestaurants(mock.Anything, entity.RestaurantFilter{Query: "green curry", Category: "Thai"}).
		Return([]*entity.Restaurant{}, nil)

	rec := fx.do(http.MethodGet, "/api/v1/restaurants?q=green+curry&category=Thai", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]apimodel.Restaurant](t, rec))
}

func TestRouter_GetRestaurant(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	t.Run("bad id", func(t *testing.T) {
		rec := fx.do(http.MethodGet, "/api/v1/restaurants/nope", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		fx.catalogUC.EXPECT().GetRestaurant(mock.Anything, id).Return(nil, domainerrors.ErrRestaurantNotFound)

		rec := fx.do(http.MethodGet, "/api/v1/restaurants/"+id.String(), "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "RESTAURANT_NOT_FOUND", decodeError(t, rec).Code)
	})
}

func TestRouter_SignUp(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		rec := fx.do(http.MethodPost, "/auth/signup", "", `{"email":"not-an-email","password":"Secret123"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", body.Code)
		assert.Equal(t, "Email must be a valid email", body.Details)
	})

	t.Run("created", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		fx.userUC.EXPECT().
			RegisterUser(mock.Anything, &usecase.RegisterUserInput{Email: "ann@example.com", Password: "Secret123"}).
			Return(&usecase.LoginOutput{
				AccessToken:  "a",
				RefreshToken: "r",
				User:         &entity.User{ID: fx.userID, Email: "ann@example.com", Name: "ann", Role: entity.RoleUser},
			}, nil)

		rec := fx.do(http.MethodPost, "/auth/signup", "", `{"email":"ann@example.com","password":"Secret123"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		session := decodeData[apimodel.Session](t, rec)
		assert.Equal(t, "a", session.AccessToken)
		assert.Equal(t, "ann", session.User.Name)
		assert.Equal(t, "user", session.User.Role)
	})

	t.Run("duplicate", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		fx.userUC.EXPECT().RegisterUser(mock.Anything, mock.Anything).
			Return(nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "register"))

		rec := fx.do(http.MethodPost, "/auth/signup", "", `{"email":"ann@example.com","password":"Secret123"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "USER_ALREADY_EXISTS", decodeError(t, rec).Code)
	})
}

func TestRouter_SignInRejected(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	fx.userUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ann@example.com", Password: "wrong"}).
		Return(nil, domainerrors.ErrInvalidCredentials)

	rec := fx.do(http.MethodPost, "/auth/login", "", `{"email":"ann@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Code)
}

func TestRouter_AuthRateLimited(t *testing.T) {
	fx := newRouterFixtures(t, &config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1, ExpiresIn: time.Minute})

	fx.userUC.EXPECT().Logout(mock.Anything, &usecase.LogoutInput{RefreshToken: "r"}).Return(nil).Once()

	first := fx.do(http.MethodPost, "/auth/logout", "", `{"refresh_token":"r"}`)
	second := fx.do(http.MethodPost, "/auth/logout", "", `{"refresh_token":"r"}`)

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, second).Code)
}

func TestRouter_UserRoutesRequireToken(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	for _, path := range []string{"/api/v1/me", "/api/v1/cart", "/api/v1/orders"} {
		rec := fx.do(http.MethodGet, path, "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_Profile(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	avatar := "https://cdn.example.com/ann.png"
	fx.profileUC.EXPECT().
		UpdateProfile(mock.Anything, fx.userID, mock.MatchedBy(func(input *usecase.UpdateProfileInput) bool {
			return input.Name == nil && input.Avatar != nil && *input.Avatar == avatar
		})).
		Return(&entity.User{ID: fx.userID, Name: "ann", Avatar: &avatar, Role: entity.RoleUser}, nil)

	rec := fx.do(http.MethodPut, "/api/v1/me", userToken, `{"avatar":"`+avatar+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeData[apimodel.User](t, rec)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatar, *user.Avatar)
}

func TestRouter_CartFlow(t *testing.T) {
	fx := newRouterFixtures(t, nil)
	menuItemID := uuid.New()

	t.Run("add", func(t *testing.T) {
		fx.cartUC.EXPECT().AddToCart(mock.Anything, fx.userID, menuItemID, 2).Return(nil).Once()

		rec := fx.do(http.MethodPost, "/api/v1/cart/items", userToken, `{"menu_item_id":"`+menuItemID.String()+`","quantity":2}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("add rejects zero quantity", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/api/v1/cart/items", userToken, `{"menu_item_id":"`+menuItemID.String()+`","quantity":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update to zero removes", func(t *testing.T) {
		fx.cartUC.EXPECT().UpdateQuantity(mock.Anything, fx.userID, menuItemID, 0).Return(nil).Once()

		rec := fx.do(http.MethodPut, "/api/v1/cart/items/"+menuItemID.String(), userToken, `{"quantity":0}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		restaurantID := uuid.New()
		fx.cartUC.EXPECT().GetCart(mock.Anything, fx.userID).Return(&entity.Cart{
			UserID: fx.userID,
			Items: []entity.CartItem{
				{MenuItem: entity.MenuItem{ID: menuItemID, Price: decimal.RequireFromString("10")}, Quantity: 2, RestaurantID: restaurantID},
				{MenuItem: entity.MenuItem{ID: uuid.New(), Price: decimal.RequireFromString("5")}, Quantity: 1, RestaurantID: uuid.New()},
			},
		}, nil).Once()

		rec := fx.do(http.MethodGet, "/api/v1/cart", userToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		cart := decodeData[apimodel.Cart](t, rec)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 3, cart.ItemCount)
		assert.True(t, cart.Total.Equal(decimal.RequireFromString("25")))
	})

	t.Run("clear", func(t *testing.T) {
		fx.cartUC.EXPECT().ClearCart(mock.Anything, fx.userID).Return(nil).Once()

		rec := fx.do(http.MethodDelete, "/api/v1/cart", userToken, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRouter_Checkout(t *testing.T) {
	t.Run("one order per restaurant", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		fx.orderUC.EXPECT().PlaceOrder(mock.Anything, fx.userID).Return([]*entity.Order{
			{ID: uuid.New(), UserID: fx.userID, RestaurantName: "X", Status: entity.OrderStatusConfirmed, Total: decimal.RequireFromString("20.00")},
			{ID: uuid.New(), UserID: fx.userID, RestaurantName: "Y", Status: entity.OrderStatusConfirmed, Total: decimal.RequireFromString("5.00")},
		}, nil)

		rec := fx.do(http.MethodPost, "/api/v1/orders", userToken, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		orders := decodeData[[]apimodel.Order](t, rec)
		require.Len(t, orders, 2)
		assert.Equal(t, "confirmed", orders[0].Status)
		assert.True(t, orders[1].Total.Equal(decimal.RequireFromString("5")))
	})

	t.Run("empty cart", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		fx.orderUC.EXPECT().PlaceOrder(mock.Anything, fx.userID).Return([]*entity.Order{}, nil)

		rec := fx.do(http.MethodPost, "/api/v1/orders", userToken, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeData[[]apimodel.Order](t, rec))
	})

	t.Run("failure hides details", func(t *testing.T) {
		fx := newRouterFixtures(t, nil)

		fx.orderUC.EXPECT().PlaceOrder(mock.Anything, fx.userID).
			Return(nil, errors.Wrap(domainerrors.ErrCheckoutFailed.WithDetails("pq: deadlock"), "place order"))

		rec := fx.do(http.MethodPost, "/api/v1/orders", userToken, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "CHECKOUT_FAILED", body.Code)
		assert.Nil(t, body.Details)
	})
}

func TestRouter_TrackingQR(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	orderID := uuid.New()
	fx.orderUC.EXPECT().GetTrackingQR(mock.Anything, fx.userID, orderID).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	rec := fx.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/qr", userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes())
}

func TestRouter_OrderTimeline(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	orderID := uuid.New()
	placedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fx.orderUC.EXPECT().GetOrderTimeline(mock.Anything, fx.userID, orderID).Return([]*entity.OrderStatusChange{
		{OrderID: orderID, To: entity.OrderStatusConfirmed, ChangedAt: placedAt},
		{OrderID: orderID, From: entity.OrderStatusConfirmed, To: entity.OrderStatusPreparing, ChangedAt: placedAt.Add(10 * time.Minute)},
	}, nil)

	rec := fx.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/timeline", userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	timeline := decodeData[[]apimodel.OrderStatusChange](t, rec)
	require.Len(t, timeline, 2)
	assert.Empty(t, timeline[0].From)
	assert.Equal(t, "confirmed", timeline[0].To)
	assert.Equal(t, "preparing", timeline[1].To)
	assert.True(t, timeline[1].ChangedAt.Equal(placedAt.Add(10*time.Minute)))
}

func TestRouter_AdminGuard(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	rec := fx.do(http.MethodGet, "/api/v1/admin/stats", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = fx.do(http.MethodGet, "/api/v1/admin/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	fx.adminUC.EXPECT().GetStats(mock.Anything).Return(&usecase.DashboardStats{
		TotalRevenue: decimal.RequireFromString("64.75"),
		TotalOrders:  3,
	}, nil)

	rec = fx.do(http.MethodGet, "/api/v1/admin/stats", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeData[apimodel.DashboardStats](t, rec)
	assert.Equal(t, int64(3), stats.TotalOrders)
}

func TestRouter_AdminUpdateOrderStatus(t *testing.T) {
	fx := newRouterFixtures(t, nil)
	orderID := uuid.New()

	t.Run("advances", func(t *testing.T) {
		fx.adminUC.EXPECT().UpdateOrderStatus(mock.Anything, orderID, entity.OrderStatusPreparing).
			Return(&entity.Order{ID: orderID, Status: entity.OrderStatusPreparing}, nil).Once()

		rec := fx.do(http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", adminToken, `{"status":"preparing"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "preparing", decodeData[apimodel.Order](t, rec).Status)
	})

	t.Run("illegal transition", func(t *testing.T) {
		fx.adminUC.EXPECT().UpdateOrderStatus(mock.Anything, orderID, entity.OrderStatusConfirmed).
			Return(nil, domainerrors.ErrInvalidStatusTransition.WithDetails("preparing -> confirmed")).Once()

		rec := fx.do(http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", adminToken, `{"status":"confirmed"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", body.Code)
		assert.Equal(t, "preparing -> confirmed", body.Details)
	})
}

func TestRouter_AdminUpdateUserRole_Validation(t *testing.T) {
	fx := newRouterFixtures(t, nil)

	rec := fx.do(http.MethodPut, "/api/v1/admin/users/"+uuid.NewString()+"/role", adminToken, `{"role":"owner"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)
}
