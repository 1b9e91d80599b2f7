package inventoryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the API handlers mounted on the router.
type ApiHandleFunctions struct {
	InventoryAPI InventoryAPI
}

// NewRouterWithGinEngine adds the routes to an existing engine. Middleware must
// be attached to the engine before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler yet.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	api := handleFunctions.InventoryAPI
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"ListProducts", http.MethodGet, "/v1/products", api.ListProducts},
		{"GetProduct", http.MethodGet, "/v1/products/:id", api.GetProduct},
		{"AddProduct", http.MethodPost, "/v1/products", api.AddProduct},
		{"UpdateProductStock", http.MethodPut, "/v1/products/:id/stock", api.UpdateProductStock},
		{"SearchProducts", http.MethodGet, "/v1/search/products", api.SearchProducts},
		{"ListOrders", http.MethodGet, "/v1/orders", api.ListOrders},
		{"GetOrder", http.MethodGet, "/v1/orders/:id", api.GetOrder},
		{"CreateOrder", http.MethodPost, "/v1/orders", api.CreateOrder},
		{"ExecuteOperation", http.MethodPost, "/v1/operations", api.ExecuteOperation},
	}
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
