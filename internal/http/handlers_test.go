package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postavki/internal/config"
	"postavki/internal/domain"
	"postavki/internal/repository"
	"postavki/internal/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, log)
	if err != nil {
		t.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repository.Close(db) })

	r := repository.NewRepositories(db)
	hasher := service.NewPasswordHasher(4)
	svc := Services{
		Supplies:   service.NewSupplyService(r.Supplies, r.Batches, r.Stores, r.Suppliers, r.Warehouses, r.Products, r.DB),
		Warehouses: service.NewWarehouseService(r.Warehouses, r.Products, r.DB),
		Stores:     service.NewStoreService(r.Stores, r.Warehouses, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		Suppliers:  service.NewSupplierService(r.Suppliers, r.Batches, r.Reviews, r.SupportMessages, r.Supplies, r.DB, hasher),
		Batches:    service.NewBatchService(r.Batches, r.Suppliers),
		Products:   service.NewProductService(r.Products, r.Warehouses, r.DB),
		Reviews:    service.NewReviewService(r.Reviews, r.Stores, r.Suppliers),
		Support:    service.NewSupportService(r.SupportMessages, r.Stores, r.Suppliers),
	}
	return NewServer(svc, r.DB, log)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// seed магазин, поставщик и партия на 5 партий по 2 единицы
func seed(t *testing.T, s *Server) (storeID, supplierID, batchID int64) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/stores", map[string]any{"name": "Магазин", "password": "pw", "address": "a"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	storeID = decode[domain.Store](t, w).ID

	w = doJSON(t, s, http.MethodPost, "/api/v1/suppliers", map[string]any{"name": "Ферма", "password": "pw", "address": "b"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	supplierID = decode[domain.Supplier](t, w).ID

	w = doJSON(t, s, http.MethodPost, "/api/v1/batches", map[string]any{
		"name": "Яйца", "price": 9.5, "itemsPerBatch": 2, "quantity": 5, "supplierId": supplierID, "expiration": 14,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	batchID = decode[domain.Batch](t, w).ID
	return storeID, supplierID, batchID
}

func TestSupplyFlow(t *testing.T) {
	s := setupServer(t)
	storeID, supplierID, batchID := seed(t, s)

	// order
	w := doJSON(t, s, http.MethodPost, "/api/v1/supplies/order", map[string]any{
		"batchId": batchID, "storeId": storeID, "supplierId": supplierID, "quantity": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("order code %v: %s", w.Code, w.Body.String())
	}
	created := decode[struct {
		Supply domain.Supply `json:"supply"`
	}](t, w)
	assert.Equal(t, domain.SupplyStatusCreated, created.Supply.Status)
	id := created.Supply.ID

	// send
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/send", map[string]any{"supplyId": id})
	if w.Code != http.StatusOK {
		t.Fatalf("send code %v: %s", w.Code, w.Body.String())
	}
	sent := decode[struct {
		Supply       domain.Supply `json:"supply"`
		UpdatedBatch struct {
			Quantity     int `json:"quantity"`
			ProductCount int `json:"productCount"`
		} `json:"updatedBatch"`
	}](t, w)
	assert.Equal(t, domain.SupplyStatusShipped, sent.Supply.Status)
	assert.Equal(t, 2, sent.UpdatedBatch.Quantity)
	assert.Equal(t, 4, sent.UpdatedBatch.ProductCount)

	// send again
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/send", map[string]any{"supplyId": id})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", w.Code)
	}

	// receive without price
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/receive", map[string]any{"supplyId": id})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// receive
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/receive", map[string]any{"supplyId": id, "pricePerItem": 12.3})
	if w.Code != http.StatusOK {
		t.Fatalf("receive code %v: %s", w.Code, w.Body.String())
	}
	recv := decode[struct {
		CreatedCount int              `json:"createdCount"`
		Supply       domain.Supply    `json:"supply"`
		Warehouse    domain.Warehouse `json:"warehouse"`
		Products     []map[string]any `json:"products"`
	}](t, w)
	assert.Equal(t, 6, recv.CreatedCount)
	assert.Equal(t, domain.SupplyStatusReceived, recv.Supply.Status)
	assert.EqualValues(t, 6, recv.Warehouse.ProductCount)
	require.Len(t, recv.Products, 6)
	assert.Equal(t, 12.3, recv.Products[0]["price"])

	// grouped
	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/warehouses/store/%d/products-grouped", storeID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("grouped code %v", w.Code)
	}
	grouped := decode[struct {
		GroupedProducts []struct {
			Count            int     `json:"count"`
			WarehouseIDs     []int64 `json:"warehouseIds"`
			FirstWarehouseID int64   `json:"firstWarehouseId"`
		} `json:"groupedProducts"`
	}](t, w)
	require.Len(t, grouped.GroupedProducts, 1)
	g := grouped.GroupedProducts[0]
	assert.Equal(t, 6, g.Count)
	require.Len(t, g.WarehouseIDs, 6)
	assert.Equal(t, g.WarehouseIDs[0], g.FirstWarehouseID)

	// remove one unit
	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/warehouse-products/%d", g.WarehouseIDs[0]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove unit code %v", w.Code)
	}
	removed := decode[struct {
		Message   string           `json:"message"`
		Warehouse domain.Warehouse `json:"warehouse"`
	}](t, w)
	assert.NotEmpty(t, removed.Message)
	assert.EqualValues(t, 5, removed.Warehouse.ProductCount)

	// bulk remove
	w = doJSON(t, s, http.MethodPost, "/api/v1/warehouse-products/bulk-delete", map[string]any{"warehouseIds": g.WarehouseIDs[1:3]})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk code %v", w.Code)
	}
	bulk := decode[struct {
		RemovedCount int `json:"removedCount"`
	}](t, w)
	assert.Equal(t, 2, bulk.RemovedCount)

	// invoice
	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/supplies/%d/invoice", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice code %v", w.Code)
	}
	inv := decode[service.Invoice](t, w)
	assert.Equal(t, "Яйца", inv.Line.BatchName)
	assert.Equal(t, 6, inv.Line.TotalItems)
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)
	// invalid product body
	w := doJSON(t, s, http.MethodPost, "/api/v1/products", map[string]any{"name": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// invalid id
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// missing bulk list
	w = doJSON(t, s, http.MethodPost, "/api/v1/warehouse-products/bulk-delete", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// empty bulk list matches nothing
	w = doJSON(t, s, http.MethodPost, "/api/v1/warehouse-products/bulk-delete", map[string]any{"warehouseIds": []int64{}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}

	// zero quantity
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/order", map[string]any{"batchId": 1, "storeId": 1, "supplierId": 1, "quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// broken json
	req := httptest.NewRequest(http.MethodPost, "/api/v1/supplies/send", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", rec.Code)
	}
}

func TestHTTP_NotFound_Conflict(t *testing.T) {
	s := setupServer(t)
	storeID, supplierID, batchID := seed(t, s)

	// not found
	w := doJSON(t, s, http.MethodGet, "/api/v1/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
	w = doJSON(t, s, http.MethodDelete, "/api/v1/warehouse-products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/warehouse-products/bulk-delete", map[string]any{"warehouseIds": []int64{998, 999}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}

	// more than available -> conflict with numbers in message
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/order", map[string]any{
		"batchId": batchID, "storeId": storeID, "supplierId": supplierID, "quantity": 6,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", w.Code)
	}
	assert.Contains(t, decode[map[string]string](t, w)["error"], "available: 5, requested: 6")

	// receive before send
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/order", map[string]any{
		"batchId": batchID, "storeId": storeID, "supplierId": supplierID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, s, http.MethodPost, "/api/v1/supplies/receive", map[string]any{"supplyId": 1, "pricePerItem": 1})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", w.Code)
	}
}

func TestHTTP_AuthAndCascade(t *testing.T) {
	s := setupServer(t)
	storeID, supplierID, _ := seed(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/store", map[string]any{"name": "Магазин", "password": "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v", w.Code)
	}
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/supplier", map[string]any{"name": "Ферма", "password": "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/reviews", map[string]any{"fromStoreId": storeID, "toSupplierId": supplierID, "text": "ok"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/reviews/supplier/%d", supplierID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Review](t, w), 1)

	w = doJSON(t, s, http.MethodPost, "/api/v1/support-messages/store", map[string]any{"storeId": storeID, "text": "help"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/stores/%d", storeID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete store code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/warehouses/store/%d", storeID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/reviews", nil)
	assert.Empty(t, decode[[]domain.Review](t, w))
	w = doJSON(t, s, http.MethodGet, "/api/v1/support-messages", nil)
	assert.Empty(t, decode[[]domain.SupportMessage](t, w))
}

func TestHTTP_HealthAndRequestID(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz code %v", w.Code)
	}
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-1")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	assert.Equal(t, "abc-1", rec.Header().Get(requestIDHeader))
}

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{repository.ErrNotFound, http.StatusNotFound},
		{&service.StateError{Current: domain.SupplyStatusReceived, Required: domain.SupplyStatusShipped}, http.StatusConflict},
		{&service.StockError{Available: 1, Requested: 2}, http.StatusConflict},
		{fmt.Errorf("%w: bad", domain.ErrMalformedContent), http.StatusUnprocessableEntity},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mapErrorToStatus(tc.err), "%v", tc.err)
	}
}
