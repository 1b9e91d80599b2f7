package inventoryserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/facade"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/application"
	ordermemory "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/adapters/memory"
	apierrors "github.com/Apurer/go-gin-inventory-api/internal/shared/errors"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := application.NewService(
		catalogmemory.NewSeededStore(),
		ordermemory.NewLedger(),
		application.WithClock(func() time.Time { return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC) }),
	)
	handlers := ApiHandleFunctions{InventoryAPI: NewInventoryAPI(facade.New(svc))}
	return NewRouterWithGinEngine(gin.New(), handlers)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []facade.ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 3)
	assert.Equal(t, "Laptop Gaming ASUS ROG", products[0].Name)

	rec = do(t, router, http.MethodGet, "/v1/products?category=fashion", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "3", products[0].ID)

	rec = do(t, router, http.MethodGet, "/v1/products?category=Toys", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetProduct_NotFoundIsProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/products/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeNotFound, problem.Type)
	assert.Equal(t, facade.CodeNotFound, problem.Extensions["code"])
	assert.Equal(t, "/v1/products/404", problem.Instance)
	assert.Equal(t, "404", problem.Extensions["identifier"])
	assert.Equal(t, "product with identifier '404' not found", problem.Detail)
}

func TestSearchProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/search/products?keyword=o&maxPrice=15000000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []facade.ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "3", products[1].ID)

	rec = do(t, router, http.MethodGet, "/v1/search/products?keyword=o&minPrice=cheap", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeBadRequest, decodeProblem(t, rec).Type)
}

func TestCreateOrder_ThenReadBack(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/orders", map[string]any{
		"productId": "2", "quantity": 2, "customerName": "Budi",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var payload facade.OrderPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	require.NotNil(t, payload.Order)
	assert.Equal(t, int64(40000000), payload.Order.TotalPrice)

	rec = do(t, router, http.MethodGet, "/v1/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var order facade.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "iPhone 15 Pro", order.ProductName)
	assert.Equal(t, "2024-06-12T10:00:00Z", order.CreatedAt)

	rec = do(t, router, http.MethodGet, "/v1/products/2", nil)
	var product facade.ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, int64(8), product.Stock)
}

func TestCreateOrder_InsufficientStockIsConflict(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/orders", map[string]any{
		"productId": "3", "quantity": 10, "customerName": "Sari",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "Insufficient stock. Available: 3", problem.Detail)
	assert.Equal(t, float64(3), problem.Extensions["available"])

	rec = do(t, router, http.MethodGet, "/v1/orders", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeBadRequest, decodeProblem(t, rec).Type)
}

func TestGetOrder_BadAndMissingID(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/orders/7", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "order", problem.Extensions["resourceType"])
	assert.Equal(t, "order with identifier '7' not found", problem.Detail)
}

func TestUpdateProductStock(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/v1/products/1/stock", map[string]any{"newStock": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	var payload facade.ProductPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, int64(0), payload.Product.Stock)

	rec = do(t, router, http.MethodPut, "/v1/products/1/stock", map[string]any{"newStock": -3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeValidation, decodeProblem(t, rec).Type)

	rec = do(t, router, http.MethodPut, "/v1/products/1/stock", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/products", map[string]any{
		"name": "Headset", "price": 750000, "stock": 8, "category": "Electronics",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var payload facade.ProductPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Product)

	rec = do(t, router, http.MethodGet, "/v1/products/"+payload.Product.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddProduct_MissingPriceOrStockIsValidationProblem(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/products", map[string]any{
		"name": "Headset", "stock": 8, "category": "Electronics",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Equal(t, "price is required", problem.Detail)
	assert.Equal(t, "price", problem.Extensions["field"])

	rec = do(t, router, http.MethodPost, "/v1/products", map[string]any{
		"name": "Headset", "price": 750000, "category": "Electronics",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "stock is required", decodeProblem(t, rec).Detail)

	rec = do(t, router, http.MethodGet, "/v1/products", nil)
	var products []facade.ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 3)
}

func TestExecuteOperation_ReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/operations", map[string]any{
		"operation": "product",
		"variables": map[string]any{"id": "missing"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"data":null,"errors":[{"code":"NOT_FOUND","message":"Product not found","extensions":{"resourceType":"product","identifier":"missing"}}]}`,
		rec.Body.String())

	rec = do(t, router, http.MethodPost, "/v1/operations", map[string]any{"operation": "dropTables"})
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Errors []facade.Error `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, facade.CodeUnknownOperation, result.Errors[0].Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
