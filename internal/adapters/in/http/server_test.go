package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"localeats/cmd/apptest"
	httpin "localeats/internal/adapters/in/http"
	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t *testing.T
	e *echo.Echo
	n int
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()

	app := apptest.New(t)
	e, err := app.Root.CreateRouter(t.Context())
	require.NoError(t, err)
	return &apiClient{t: t, e: e}
}

func (c *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// signUp registers a user over the API and returns its token.
func (c *apiClient) signUp(role string) (string, queries.UserView) {
	c.t.Helper()

	c.n++
	rec := c.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"email":    fmt.Sprintf("%s%d@example.com", role, c.n),
		"password": apptest.Password,
		"name":     fmt.Sprintf("%s %d", role, c.n),
		"role":     role,
		"phone":    "+1 555 0100",
		"address":  "10 Elm Street",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[httpin.AuthResponse](c.t, rec)
	require.NotEmpty(c.t, resp.Token)
	return resp.Token, resp.User
}

// openRestaurant registers a restaurant with one item and returns the
// owner token and the restaurant.
func (c *apiClient) openRestaurant() (string, queries.RestaurantView) {
	c.t.Helper()

	token, _ := c.signUp("restaurant")
	rec := c.do(http.MethodPost, "/api/v1/restaurants", token, map[string]any{
		"name":         "Falafel Corner",
		"description":  "Street food",
		"address":      "5 Harbour Road",
		"deliveryTime": "20 min",
		"deliveryFee":  1.5,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[queries.RestaurantView](c.t, rec)

	rec = c.do(http.MethodPost, "/api/v1/restaurants/"+created.ID.String()+"/menu", token, map[string]any{
		"name":     "Falafel Wrap",
		"price":    7.25,
		"category": "Wraps",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return token, decode[queries.RestaurantView](c.t, rec)
}

func (c *apiClient) placeOrder(token string, r queries.RestaurantView, qty int) queries.OrderDetails {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/api/v1/orders", token, map[string]any{
		"restaurantId":  r.ID.String(),
		"items":         []map[string]any{{"menuItemId": r.Menu[0].ID.String(), "quantity": qty}},
		"paymentMethod": "cash",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[queries.OrderDetails](c.t, rec)
}

func TestHealth(t *testing.T) {
	c := newAPIClient(t)

	rec := c.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth(t *testing.T) {
	c := newAPIClient(t)
	_, profile := c.signUp("customer")

	t.Run("sign in returns a token for the profile", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/auth/signin", "", map[string]any{
			"email":    profile.Email,
			"password": apptest.Password,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[httpin.AuthResponse](t, rec)

		rec = c.do(http.MethodGet, "/api/v1/me", resp.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[queries.UserView](t, rec)
		assert.True(t, me.ID.IsEqual(profile.ID))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/auth/signin", "", map[string]any{
			"email":    profile.Email,
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("email already registered", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"email":    profile.Email,
			"password": apptest.Password,
			"name":     "Someone Else",
			"role":     "driver",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed sign up", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"email":    "no-at-sign",
			"password": "123",
			"name":     "",
			"role":     "admin",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing or bad token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/me", "", nil).Code)
		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/me", "not-a-jwt", nil).Code)
	})
}

func TestOrderFlow(t *testing.T) {
	c := newAPIClient(t)
	ownerToken, r := c.openRestaurant()
	customerToken, _ := c.signUp("customer")
	driverToken, _ := c.signUp("driver")
	rivalToken, _ := c.signUp("driver")

	rec := c.do(http.MethodGet, "/api/v1/restaurants?search=falafel", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]queries.RestaurantView](t, rec), 1)

	placed := c.placeOrder(customerToken, r, 2)
	assert.Equal(t, order.Pending, placed.Status)
	assert.InDelta(t, 14.5, placed.TotalAmount, 0.001)
	orderPath := "/api/v1/orders/" + placed.ID.String()

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, orderPath+"/cancel", customerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, orderPath+"/accept", customerToken, nil).Code)

	rec = c.do(http.MethodGet, "/api/v1/restaurant/orders", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[queries.RestaurantOrders](t, rec).New, 1)

	for _, action := range []string{"accept", "prepare", "ready"} {
		rec = c.do(http.MethodPost, orderPath+"/"+action, ownerToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code, "%s: %s", action, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/api/v1/driver/pool", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pool := decode[[]queries.PoolEntry](t, rec)
	require.Len(t, pool, 1)
	assert.InDelta(t, 1.45, pool[0].EstimatedEarning, 0.001)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, orderPath+"/claim", driverToken, nil).Code)
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, orderPath+"/claim", rivalToken, nil).Code)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, orderPath+"/dispatch", driverToken, nil).Code)
	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, orderPath+"/deliver", driverToken, nil).Code)

	rec = c.do(http.MethodGet, "/api/v1/customer/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[queries.CustomerOrders](t, rec)
	require.Len(t, mine.History, 1)
	assert.Equal(t, order.Delivered, mine.History[0].Status)

	rec = c.do(http.MethodPost, orderPath+"/reorder", customerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	again := decode[queries.OrderDetails](t, rec)
	assert.Equal(t, order.Pending, again.Status)
	assert.InDelta(t, placed.TotalAmount, again.TotalAmount, 0.001)
}

func TestErrors(t *testing.T) {
	c := newAPIClient(t)
	ownerToken, r := c.openRestaurant()
	customerToken, _ := c.signUp("customer")

	t.Run("unknown order", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/v1/orders/5b0c3c52-6f0e-4f8e-9d3a-2f5b8f7e8a11", customerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[httpin.ErrorResponse](t, rec)
		assert.Equal(t, http.StatusNotFound, body.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/v1/orders/not-a-uuid", customerToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body that breaks the schema", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/orders", customerToken, map[string]any{
			"restaurantId":  r.ID.String(),
			"items":         []map[string]any{},
			"paymentMethod": "cheque",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/v1/driver/pool", customerToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("another owner's restaurant", func(t *testing.T) {
		otherToken, _ := c.openRestaurant()
		rec := c.do(http.MethodPut, "/api/v1/restaurants/"+r.ID.String()+"/open", otherToken, map[string]any{"isOpen": false})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = c.do(http.MethodPut, "/api/v1/restaurants/"+r.ID.String()+"/open", ownerToken, map[string]any{"isOpen": false})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("closed restaurant", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/orders", customerToken, map[string]any{
			"restaurantId":  r.ID.String(),
			"items":         []map[string]any{{"menuItemId": r.Menu[0].ID.String(), "quantity": 1}},
			"paymentMethod": "cash",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMenuManagement(t *testing.T) {
	c := newAPIClient(t)
	ownerToken, r := c.openRestaurant()
	base := "/api/v1/restaurants/" + r.ID.String()
	itemPath := base + "/menu/" + r.Menu[0].ID.String()

	rec := c.do(http.MethodPatch, itemPath, ownerToken, map[string]any{"isAvailable": false})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPut, base+"/menu", ownerToken, map[string]any{
		"items": []map[string]any{
			{"id": r.Menu[0].ID.String(), "name": "Falafel Wrap", "price": 7.5, "category": "Wraps", "isAvailable": false},
			{"name": "Hummus", "price": 4, "category": "Sides"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	replaced := decode[queries.RestaurantView](t, rec)
	require.Len(t, replaced.Menu, 2)
	assert.False(t, replaced.Menu[0].Available)
	assert.True(t, replaced.Menu[1].Available)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, itemPath, ownerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, itemPath, ownerToken, nil).Code)

	rec = c.do(http.MethodPut, base, ownerToken, map[string]any{"name": "Falafel Palace", "address": "5 Harbour Road"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/v1/restaurant", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	owned := decode[queries.RestaurantView](t, rec)
	assert.Equal(t, "Falafel Palace", owned.Name)
	assert.Len(t, owned.Menu, 1)
}

func TestDriverAvailability(t *testing.T) {
	c := newAPIClient(t)
	driverToken, _ := c.signUp("driver")

	rec := c.do(http.MethodPut, "/api/v1/driver/availability", driverToken, map[string]any{"online": true})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	me := decode[queries.UserView](t, c.do(http.MethodGet, "/api/v1/me", driverToken, nil))
	assert.True(t, me.IsOnline)

	rec = c.do(http.MethodPut, "/api/v1/driver/availability", driverToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	c := newAPIClient(t)
	c.do(http.MethodGet, "/health", "", nil)

	rec := c.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "localeats_http_requests_total")
	assert.Contains(t, rec.Body.String(), "localeats_feed_subscriptions")

	rec = c.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LocalEats API")
}

func TestRateLimit(t *testing.T) {
	server := httpin.NewServer(nil, commands.SignUpCommandHandler{}, queries.SignInQueryHandler{}, queries.GetUserQueryHandler{}, nil, nil)
	e, err := httpin.NewRouter(server, httpin.RouterConfig{RateLimitRPS: 1})
	require.NoError(t, err)

	codes := make([]int, 0, 5)
	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
