package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"foodie/internal/domain/entity"
	"foodie/pkg/apimodel"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned responses keyed by bearer token and counts hits per route.
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	hits   map[string]int
	users  map[string]*apimodel.User
	carts  map[string]apimodel.Cart
	failOn map[string]int
	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	api := &fakeAPI{
		t:      t,
		hits:   make(map[string]int),
		users:  make(map[string]*apimodel.User),
		carts:  make(map[string]apimodel.Cart),
		failOn: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", api.route(api.login))
	mux.HandleFunc("POST /auth/refresh", api.route(api.refresh))
	mux.HandleFunc("POST /auth/logout", api.route(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.HandleFunc("GET /api/v1/me", api.route(api.authed(func(w http.ResponseWriter, _ *http.Request, user *apimodel.User) {
		writeData(w, http.StatusOK, user)
	})))
	mux.HandleFunc("GET /api/v1/restaurants", api.route(func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, []apimodel.Restaurant{{ID: uuid.New(), Name: "Luigi's", Categories: []string{}, Menu: []apimodel.MenuItem{}}})
	}))
	mux.HandleFunc("GET /api/v1/cart", api.route(api.authed(func(w http.ResponseWriter, _ *http.Request, user *apimodel.User) {
		api.mu.Lock()
		cart := api.carts[user.ID.String()]
		api.mu.Unlock()
		writeData(w, http.StatusOK, cart)
	})))
	mux.HandleFunc("POST /api/v1/cart/items", api.route(api.authed(func(w http.ResponseWriter, _ *http.Request, _ *apimodel.User) {
		w.WriteHeader(http.StatusNoContent)
	})))
	mux.HandleFunc("POST /api/v1/orders", api.route(api.authed(func(w http.ResponseWriter, _ *http.Request, _ *apimodel.User) {
		writeError(w, http.StatusInternalServerError, "CHECKOUT_FAILED", "Checkout failed")
	})))
	mux.HandleFunc("PUT /api/v1/admin/orders/{id}/status", api.route(api.authed(func(w http.ResponseWriter, _ *http.Request, _ *apimodel.User) {
		writeError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Illegal order status transition")
	})))

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)

	return api
}

func (api *fakeAPI) route(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.Method + " " + r.URL.Path

		api.mu.Lock()
		api.hits[name]++
		failures := api.failOn[name]
		if failures > 0 {
			api.failOn[name]--
		}
		api.mu.Unlock()

		if failures > 0 {
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")

			return
		}
		next(w, r)
	}
}

func (api *fakeAPI) authed(next func(http.ResponseWriter, *http.Request, *apimodel.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		user := api.users[r.Header.Get("Authorization")]
		api.mu.Unlock()

		if user == nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")

			return
		}
		next(w, r, user)
	}
}

// addUser registers an account whose password is its email and whose tokens derive from its name.
func (api *fakeAPI) addUser(name, role string) *apimodel.User {
	user := &apimodel.User{ID: uuid.New(), Email: name + "@foodie.test", Name: name, Role: role}

	api.mu.Lock()
	api.users["Bearer access-"+name] = user
	api.mu.Unlock()

	return user
}

func (api *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req apimodel.SignInRequest
	require.NoError(api.t, json.NewDecoder(r.Body).Decode(&req))

	api.mu.Lock()
	defer api.mu.Unlock()
	for token, user := range api.users {
		if user.Email == req.Email && req.Password == req.Email {
			writeData(w, http.StatusOK, &apimodel.Session{
				AccessToken:  token[len("Bearer "):],
				RefreshToken: "refresh-" + user.Name,
				User:         user,
			})

			return
		}
	}
	writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
}

func (api *fakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	var req apimodel.RefreshRequest
	require.NoError(api.t, json.NewDecoder(r.Body).Decode(&req))

	api.mu.Lock()
	defer api.mu.Unlock()
	for _, user := range api.users {
		if req.RefreshToken == "refresh-"+user.Name {
			writeData(w, http.StatusOK, &apimodel.AccessToken{AccessToken: "access-" + user.Name})

			return
		}
	}
	writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token is invalid or expired")
}

func (api *fakeAPI) hitCount(route string) int {
	api.mu.Lock()
	defer api.mu.Unlock()

	return api.hits[route]
}

func (api *fakeAPI) failNext(route string, times int) {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.failOn[route] = times
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apimodel.Envelope[any]{Data: data, Meta: &apimodel.Meta{RequestID: "req-1"}})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apimodel.ErrorEnvelope{
		Error: &apimodel.ErrorBody{Code: code, Message: message},
		Meta:  &apimodel.Meta{RequestID: "req-1"},
	})
}

func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) *Client {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	c, err := New(api.server.URL, opts...)
	require.NoError(t, err)

	return c
}

func signIn(t *testing.T, c *Client, user *apimodel.User) {
	t.Helper()

	_, err := c.SignIn(context.Background(), user.Email, user.Email)
	require.NoError(t, err)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("/api")

	assert.Error(t, err)
}

func TestSignIn_SetsSessionAndGuards(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleUser)
	c := newTestClient(t, api)

	assert.Equal(t, entity.AccessRedirectLogin, c.Guard(entity.RequireAuthenticated))

	signIn(t, c, alice)

	assert.Equal(t, alice.ID, c.CurrentUser().ID)
	assert.Equal(t, entity.AccessAllow, c.Guard(entity.RequireAuthenticated))
	assert.Equal(t, entity.AccessRedirectHome, c.Guard(entity.RequireAdmin))

	require.NoError(t, c.SignOut(context.Background()))
	assert.Nil(t, c.CurrentUser())
	assert.Equal(t, entity.AccessRedirectLogin, c.Guard(entity.RequireAdmin))
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api)

	_, err := c.SignIn(context.Background(), "nobody@foodie.test", "wrong")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.Nil(t, c.CurrentUser())
}

func TestSessionChange_ClearsCache(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleUser)
	bob := api.addUser("bob", apimodel.RoleUser)
	api.carts[alice.ID.String()] = apimodel.Cart{Items: []apimodel.CartItem{{
		MenuItem: apimodel.MenuItem{Name: "Margherita", Price: decimal.RequireFromString("12.50")},
		Quantity: 2,
	}}}
	c := newTestClient(t, api)
	ctx := context.Background()

	signIn(t, c, alice)
	c.Restaurants(ctx)
	require.Len(t, c.Cart(ctx).Items, 1)
	require.Len(t, c.Cart(ctx).Items, 1)
	assert.Equal(t, 1, api.hitCount("GET /api/v1/cart"))

	signIn(t, c, bob)

	assert.Empty(t, c.Cart(ctx).Items)
	assert.Equal(t, 2, api.hitCount("GET /api/v1/cart"))
	c.Restaurants(ctx)
	assert.Equal(t, 2, api.hitCount("GET /api/v1/restaurants"))
}

func TestRead_FailureDegradesToEmpty(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api)
	ctx := context.Background()

	api.failNext("GET /api/v1/restaurants", 1)

	restaurants := c.Restaurants(ctx)
	assert.NotNil(t, restaurants)
	assert.Empty(t, restaurants)

	// The failure was not cached.
	assert.Len(t, c.Restaurants(ctx), 1)
	assert.Equal(t, 2, api.hitCount("GET /api/v1/restaurants"))
}

var searchFixture = []apimodel.Restaurant{
	{ID: uuid.New(), Name: "Luigi's", Categories: []string{"Pizza", "Italian"}, Menu: []apimodel.MenuItem{
		{Name: "Margherita", Description: "Tomato and mozzarella", Category: "Pizzas"},
	}},
	{ID: uuid.New(), Name: "Bangkok Street", Categories: []string{"Thai"}, Menu: []apimodel.MenuItem{
		{Name: "Green Curry", Description: "Coconut and basil", Category: "Curries"},
	}},
}

func TestSearchRestaurants_FiltersCachedList(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api)
	ctx := context.Background()

	c.cache.set(QueryKey{EntityRestaurants, ScopeAll}, searchFixture, stamp{})

	names := func(restaurants []apimodel.Restaurant) []string {
		out := make([]string, 0, len(restaurants))
		for _, r := range restaurants {
			out = append(out, r.Name)
		}

		return out
	}

	assert.Equal(t, []string{"Luigi's", "Bangkok Street"}, names(c.SearchRestaurants(ctx, "", "")))
	assert.Equal(t, []string{"Bangkok Street"}, names(c.SearchRestaurants(ctx, "COCONUT", "")))
	assert.Equal(t, []string{"Luigi's"}, names(c.SearchRestaurants(ctx, "", "italian")))
	assert.Empty(t, c.SearchRestaurants(ctx, "curry", "Italian"))
	assert.Equal(t, 0, api.hitCount("GET /api/v1/restaurants"))
}

func TestRead_SignedOutSkipsRequest(t *testing.T) {
	api := newFakeAPI(t)
	c := newTestClient(t, api)
	ctx := context.Background()

	assert.Empty(t, c.Cart(ctx).Items)
	assert.Empty(t, c.Orders(ctx))
	assert.Empty(t, c.AdminUsers(ctx))
	assert.Equal(t, 0, api.hitCount("GET /api/v1/cart"))
}

func TestMutation_InvalidatesThenRefetches(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleUser)
	c := newTestClient(t, api)
	ctx := context.Background()

	signIn(t, c, alice)
	c.Cart(ctx)
	c.Cart(ctx)
	require.Equal(t, 1, api.hitCount("GET /api/v1/cart"))

	require.NoError(t, c.AddToCart(ctx, uuid.New(), 1))

	c.Cart(ctx)
	assert.Equal(t, 2, api.hitCount("GET /api/v1/cart"))
}

func TestMutation_PropagatesErrors(t *testing.T) {
	api := newFakeAPI(t)
	admin := api.addUser("root", apimodel.RoleAdmin)
	c := newTestClient(t, api)
	ctx := context.Background()

	_, err := c.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	signIn(t, c, admin)

	_, err = c.PlaceOrder(ctx)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))

	_, err = c.UpdateOrderStatus(ctx, uuid.New(), "delivered")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INVALID_STATUS_TRANSITION", apiErr.Code)
}

func TestCartTotal_SumsCachedCart(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleUser)
	api.carts[alice.ID.String()] = apimodel.Cart{Items: []apimodel.CartItem{
		{MenuItem: apimodel.MenuItem{Price: decimal.RequireFromString("12.50")}, Quantity: 2},
		{MenuItem: apimodel.MenuItem{Price: decimal.RequireFromString("18.00")}, Quantity: 1},
	}}
	c := newTestClient(t, api)

	signIn(t, c, alice)
	assert.True(t, c.CartTotal().IsZero())

	c.Cart(context.Background())

	assert.True(t, c.CartTotal().Equal(decimal.RequireFromString("43.00")), c.CartTotal().String())
}

func TestRestoreAndRefresh(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleAdmin)
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "session", "snapshot.json"))
	ctx := context.Background()

	stale := *alice
	stale.Name = "Alice (cached)"
	require.NoError(t, store.Save(&Snapshot{User: &stale, RefreshToken: "refresh-alice"}))

	c := newTestClient(t, api, WithSnapshotStore(store))

	restored, err := c.Restore()
	require.NoError(t, err)
	assert.Equal(t, "Alice (cached)", restored.Name)
	assert.Equal(t, entity.AccessPending, c.Guard(entity.RequireAdmin))

	user, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, entity.AccessAllow, c.Guard(entity.RequireAdmin))

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", saved.User.Name)
}

func TestRefresh_RejectedSessionClearsSnapshot(t *testing.T) {
	api := newFakeAPI(t)
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, store.Save(&Snapshot{
		User:         &apimodel.User{ID: uuid.New(), Name: "ghost", Role: apimodel.RoleUser},
		RefreshToken: "refresh-revoked",
	}))

	c := newTestClient(t, api, WithSnapshotStore(store))
	_, err := c.Restore()
	require.NoError(t, err)

	user, err := c.Refresh(context.Background())

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, entity.AccessRedirectLogin, c.Guard(entity.RequireAuthenticated))
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestRefresh_ServerDownKeepsAdvisoryUser(t *testing.T) {
	api := newFakeAPI(t)
	alice := api.addUser("alice", apimodel.RoleUser)
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, store.Save(&Snapshot{User: alice, RefreshToken: "refresh-alice"}))

	c := newTestClient(t, api, WithSnapshotStore(store))
	_, err := c.Restore()
	require.NoError(t, err)

	api.failNext("POST /auth/refresh", 1)
	_, err = c.Refresh(context.Background())

	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Equal(t, alice.ID, c.CurrentUser().ID)
	assert.Equal(t, entity.AccessAllow, c.Guard(entity.RequireAuthenticated))
}

func TestFileSnapshotStore_MissingFile(t *testing.T) {
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "absent.json"))

	snapshot, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, snapshot)
	assert.NoError(t, store.Clear())
}
