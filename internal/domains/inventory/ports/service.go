package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

// PlaceOrderInput is the command accepted by PlaceOrder.
type PlaceOrderInput struct {
	ProductID    string
	Quantity     int64
	CustomerName string
}

// Service exposes the inventory use cases to adapters (inbound/driving port).
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*orderdomain.Order, error)
	AdjustStock(ctx context.Context, productID string, newStock int64) (*catalogdomain.Product, error)
	AddProduct(ctx context.Context, attrs catalogdomain.Attributes) (*catalogdomain.Product, error)
	ListProducts(ctx context.Context) ([]*catalogdomain.Product, error)
	GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error)
	SearchProducts(ctx context.Context, criteria catalogdomain.SearchCriteria) ([]*catalogdomain.Product, error)
	ListOrders(ctx context.Context) ([]*orderdomain.Order, error)
	GetOrder(ctx context.Context, id int64) (*orderdomain.Order, error)
}

// OrderWorkflows runs order placement, possibly through a durable engine.
type OrderWorkflows interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*orderdomain.Order, error)
}
