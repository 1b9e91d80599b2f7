package inventoryserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/facade"
)

// InventoryAPI exposes the inventory façade over REST.
type InventoryAPI struct {
	facade *facade.Facade
}

func NewInventoryAPI(f *facade.Facade) InventoryAPI {
	return InventoryAPI{facade: f}
}

type stockUpdateBody struct {
	NewStock *int64 `json:"newStock"`
}

// Get /v1/products
// Lists the catalog, optionally narrowed to one category
func (api *InventoryAPI) ListProducts(c *gin.Context) {
	if category, ok := c.GetQuery("category"); ok {
		respondResult(c, http.StatusOK, api.facade.ProductsByCategory(c.Request.Context(), category))
		return
	}
	respondResult(c, http.StatusOK, api.facade.AllProducts(c.Request.Context()))
}

// Get /v1/products/:id
func (api *InventoryAPI) GetProduct(c *gin.Context) {
	respondResult(c, http.StatusOK, api.facade.Product(c.Request.Context(), c.Param("id")))
}

// Get /v1/search/products
// Searches by keyword with optional inclusive price bounds
func (api *InventoryAPI) SearchProducts(c *gin.Context) {
	minPrice, err := optionalInt64Query(c, "minPrice")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	maxPrice, err := optionalInt64Query(c, "maxPrice")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	input := facade.SearchInput{Keyword: c.Query("keyword"), MinPrice: minPrice, MaxPrice: maxPrice}
	respondResult(c, http.StatusOK, api.facade.SearchProducts(c.Request.Context(), input))
}

// Post /v1/products
func (api *InventoryAPI) AddProduct(c *gin.Context) {
	var body facade.AddProductInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	respondResult(c, http.StatusCreated, api.facade.AddProduct(c.Request.Context(), body))
}

// Put /v1/products/:id/stock
// Overwrites the stock level of a product
func (api *InventoryAPI) UpdateProductStock(c *gin.Context) {
	var body stockUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	if body.NewStock == nil {
		respondBadRequest(c, fmt.Errorf("newStock is required"))
		return
	}
	input := facade.UpdateProductStockInput{ProductID: c.Param("id"), NewStock: *body.NewStock}
	respondResult(c, http.StatusOK, api.facade.UpdateProductStock(c.Request.Context(), input))
}

// Get /v1/orders
func (api *InventoryAPI) ListOrders(c *gin.Context) {
	respondResult(c, http.StatusOK, api.facade.AllOrders(c.Request.Context()))
}

// Get /v1/orders/:id
func (api *InventoryAPI) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid order id %q", c.Param("id")))
		return
	}
	respondResult(c, http.StatusOK, api.facade.Order(c.Request.Context(), id))
}

// Post /v1/orders
// Places an order, reserving stock atomically
func (api *InventoryAPI) CreateOrder(c *gin.Context) {
	var body facade.CreateOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	respondResult(c, http.StatusCreated, api.facade.CreateOrder(c.Request.Context(), body))
}

// Post /v1/operations
// Runs a named operation and returns the data/errors envelope unchanged
func (api *InventoryAPI) ExecuteOperation(c *gin.Context) {
	var req facade.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, api.facade.Execute(c.Request.Context(), req))
}

func optionalInt64Query(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &value, nil
}
