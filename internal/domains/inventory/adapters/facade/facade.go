package facade

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

// Result is the response envelope of every operation: data plus an optional error list.
type Result[T any] struct {
	Data   T       `json:"data"`
	Errors []Error `json:"errors,omitempty"`
}

// OrderPayload is the data of createOrder. Order is nil when Success is false.
type OrderPayload struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Order   *OrderView `json:"order"`
}

// ProductPayload is the data of updateProductStock and addProduct.
type ProductPayload struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Product *ProductView `json:"product"`
}

type SearchInput struct {
	Keyword  string `json:"keyword"`
	MinPrice *int64 `json:"minPrice,omitempty"`
	MaxPrice *int64 `json:"maxPrice,omitempty"`
}

type CreateOrderInput struct {
	ProductID    string `json:"productId"`
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customerName"`
}

type UpdateProductStockInput struct {
	ProductID string `json:"productId"`
	NewStock  int64  `json:"newStock"`
}

// AddProductInput requires price and stock to be present; zero is a valid value
// but an absent field is not.
type AddProductInput struct {
	Name        string `json:"name"`
	Price       *int64 `json:"price"`
	Stock       *int64 `json:"stock"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Facade maps each external operation onto one inventory service call and
// shapes the outcome. Failures are reported in the result, never returned.
type Facade struct {
	service   ports.Service
	workflows ports.OrderWorkflows
}

type Option func(*Facade)

// WithOrderWorkflows routes createOrder through the given orchestrator.
func WithOrderWorkflows(w ports.OrderWorkflows) Option {
	return func(f *Facade) {
		f.workflows = w
	}
}

func New(service ports.Service, opts ...Option) *Facade {
	f := &Facade{service: service}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *Facade) AllProducts(ctx context.Context) Result[[]*ProductView] {
	products, err := f.service.ListProducts(ctx)
	if err != nil {
		return Result[[]*ProductView]{Data: []*ProductView{}, Errors: []Error{ToError(err)}}
	}
	return Result[[]*ProductView]{Data: FromProductList(products)}
}

func (f *Facade) Product(ctx context.Context, id string) Result[*ProductView] {
	product, err := f.service.GetProduct(ctx, id)
	if err != nil {
		return Result[*ProductView]{Errors: []Error{withIdentifier(ToError(err), id)}}
	}
	return Result[*ProductView]{Data: FromProduct(product)}
}

func (f *Facade) ProductsByCategory(ctx context.Context, category string) Result[[]*ProductView] {
	products, err := f.service.ProductsByCategory(ctx, category)
	if err != nil {
		return Result[[]*ProductView]{Data: []*ProductView{}, Errors: []Error{ToError(err)}}
	}
	return Result[[]*ProductView]{Data: FromProductList(products)}
}

func (f *Facade) SearchProducts(ctx context.Context, input SearchInput) Result[[]*ProductView] {
	criteria := catalogdomain.SearchCriteria{Keyword: input.Keyword, MinPrice: input.MinPrice, MaxPrice: input.MaxPrice}
	products, err := f.service.SearchProducts(ctx, criteria)
	if err != nil {
		return Result[[]*ProductView]{Data: []*ProductView{}, Errors: []Error{ToError(err)}}
	}
	return Result[[]*ProductView]{Data: FromProductList(products)}
}

func (f *Facade) AllOrders(ctx context.Context) Result[[]*OrderView] {
	orders, err := f.service.ListOrders(ctx)
	if err != nil {
		return Result[[]*OrderView]{Data: []*OrderView{}, Errors: []Error{ToError(err)}}
	}
	return Result[[]*OrderView]{Data: FromOrderList(orders)}
}

// Order is a single-order lookup used by the REST transport.
func (f *Facade) Order(ctx context.Context, id int64) Result[*OrderView] {
	order, err := f.service.GetOrder(ctx, id)
	if err != nil {
		return Result[*OrderView]{Errors: []Error{withIdentifier(ToError(err), id)}}
	}
	return Result[*OrderView]{Data: FromOrder(order)}
}

func (f *Facade) CreateOrder(ctx context.Context, input CreateOrderInput) Result[OrderPayload] {
	order, err := f.placeOrder(ctx, ports.PlaceOrderInput{
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		CustomerName: input.CustomerName,
	})
	if err != nil {
		failure := withIdentifier(ToError(err), input.ProductID)
		return Result[OrderPayload]{Data: OrderPayload{Message: failure.Message}, Errors: []Error{failure}}
	}
	return Result[OrderPayload]{Data: OrderPayload{Success: true, Message: "Order created successfully", Order: FromOrder(order)}}
}

func (f *Facade) placeOrder(ctx context.Context, input ports.PlaceOrderInput) (*orderdomain.Order, error) {
	if f.workflows != nil {
		return f.workflows.PlaceOrder(ctx, input)
	}
	return f.service.PlaceOrder(ctx, input)
}

func (f *Facade) UpdateProductStock(ctx context.Context, input UpdateProductStockInput) Result[ProductPayload] {
	product, err := f.service.AdjustStock(ctx, input.ProductID, input.NewStock)
	if err != nil {
		failure := withIdentifier(ToError(err), input.ProductID)
		return Result[ProductPayload]{Data: ProductPayload{Message: failure.Message}, Errors: []Error{failure}}
	}
	return Result[ProductPayload]{Data: ProductPayload{Success: true, Message: "Stock updated successfully", Product: FromProduct(product)}}
}

func (f *Facade) AddProduct(ctx context.Context, input AddProductInput) Result[ProductPayload] {
	if failure, missing := requiredField("price", input.Price == nil); missing {
		return Result[ProductPayload]{Data: ProductPayload{Message: failure.Message}, Errors: []Error{failure}}
	}
	if failure, missing := requiredField("stock", input.Stock == nil); missing {
		return Result[ProductPayload]{Data: ProductPayload{Message: failure.Message}, Errors: []Error{failure}}
	}
	product, err := f.service.AddProduct(ctx, catalogdomain.Attributes{
		Name:        input.Name,
		Price:       *input.Price,
		Stock:       *input.Stock,
		Category:    input.Category,
		Description: input.Description,
	})
	if err != nil {
		failure := ToError(err)
		return Result[ProductPayload]{Data: ProductPayload{Message: failure.Message}, Errors: []Error{failure}}
	}
	return Result[ProductPayload]{Data: ProductPayload{Success: true, Message: "Product added successfully", Product: FromProduct(product)}}
}

func requiredField(name string, missing bool) (Error, bool) {
	if !missing {
		return Error{}, false
	}
	return Error{Code: CodeValidation, Message: name + " is required", Extensions: map[string]any{"field": name}}, true
}
