package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/mw"
	"storefront/internal/service"
)

type memUserStore struct {
	users map[string]*model.User
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) ByID(_ context.Context, id string) (*model.User, error) {
	return s.users[id], nil
}

func (s *memUserStore) ByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memProductStore struct {
	products map[string]*model.Product
}

func (s *memProductStore) Create(_ context.Context, p *model.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *memProductStore) Update(_ context.Context, p *model.Product) (bool, error) {
	if _, ok := s.products[p.ID]; !ok {
		return false, nil
	}
	s.products[p.ID] = p
	return true, nil
}

func (s *memProductStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *memProductStore) ByID(_ context.Context, id string) (*model.Product, error) {
	return s.products[id], nil
}

func (s *memProductStore) ByIDs(_ context.Context, ids []string) (map[string]*model.Product, error) {
	result := map[string]*model.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (s *memProductStore) List(_ context.Context) ([]*model.Product, error) {
	var list []*model.Product
	for _, p := range s.products {
		list = append(list, p)
	}
	return list, nil
}

type memOrderStore struct {
	orders map[string]*model.Order
}

func (s *memOrderStore) Create(_ context.Context, o *model.Order) error {
	s.orders[o.ID] = o
	return nil
}

func (s *memOrderStore) ByID(_ context.Context, id string) (*model.Order, error) {
	return s.orders[id], nil
}

func (s *memOrderStore) List(_ context.Context) ([]*model.Order, error) {
	var list []*model.Order
	for _, o := range s.orders {
		list = append(list, o)
	}
	return list, nil
}

func (s *memOrderStore) ListByUser(_ context.Context, userID string) ([]*model.Order, error) {
	var list []*model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			list = append(list, o)
		}
	}
	return list, nil
}

func (s *memOrderStore) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	o, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (s *memOrderStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

type testEnv struct {
	router *chi.Mux
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ten, fifteenFifty := 10.00, 15.50
	users := &memUserStore{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com", Password: "pw"},
	}}
	products := &memProductStore{products: map[string]*model.Product{
		"p1": {ID: "p1", Name: "Mug", Price: &ten},
		"p2": {ID: "p2", Name: "Shirt", Price: &fifteenFifty},
	}}
	orders := &memOrderStore{orders: map[string]*model.Order{}}

	authSvc := service.NewAuthService(users, "secret")
	orderSvc := service.NewOrderService(orders, users, products)

	token, err := authSvc.Token("u1")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(mw.Auth(authSvc))
	r.Post("/api/orders", CreateOrderHandler(orderSvc))
	r.Get("/api/orders/{id}", GetOrderHandler(orderSvc))
	r.Patch("/api/orders/{id}/status", UpdateOrderStatusHandler(orderSvc))
	r.Delete("/api/orders/{id}", DeleteOrderHandler(orderSvc))

	return &testEnv{router: r, token: token}
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/orders", `{"user_id":"u1","product_ids":["p1"]}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderResponseIsHydrated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/orders", `{"user_id":"u1","product_ids":["p1","p1","p2"]}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order model.HydratedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.InDelta(t, 35.50, order.TotalPrice, 1e-9)
	assert.Equal(t, model.StatusPlaced, order.Status)
	require.NotNil(t, order.User)
	assert.Equal(t, "ada@example.com", order.User.Email)
	assert.Len(t, order.Products, 3)
}

func TestCreateOrderUnknownReferenceIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/orders", `{"user_id":"nobody","product_ids":["p1"]}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/api/orders", `{"user_id":"u1","product_ids":["nope"]}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMissingOrderReturnsNull(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/orders/missing", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestDeleteOrderReportsOutcome(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/orders", `{"user_id":"u1","product_ids":["p2"]}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order model.HydratedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = env.do(http.MethodDelete, "/api/orders/"+order.ID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order deleted")

	rec = env.do(http.MethodDelete, "/api/orders/"+order.ID, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order already absent")
}

func TestUpdateStatusSkipsTransitionGraph(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/orders", `{"user_id":"u1","product_ids":["p1"]}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order model.HydratedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = env.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", `{"status":"shipped"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.HydratedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusShipped, updated.Status)
	assert.InDelta(t, 10.00, updated.TotalPrice, 1e-9)
}
