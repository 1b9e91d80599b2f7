package facade

import (
	"time"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

// ProductView is the external shape of a product.
type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// OrderView is the external shape of an order.
type OrderView struct {
	ID           int64  `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Quantity     int64  `json:"quantity"`
	TotalPrice   int64  `json:"totalPrice"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// FromProduct converts a domain product to its view; nil stays nil.
func FromProduct(p *catalogdomain.Product) *ProductView {
	if p == nil {
		return nil
	}
	return &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
	}
}

// FromProductList never returns nil so empty results encode as [].
func FromProductList(products []*catalogdomain.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, FromProduct(p))
	}
	return views
}

func FromOrder(o *orderdomain.Order) *OrderView {
	if o == nil {
		return nil
	}
	return &OrderView{
		ID:           o.ID,
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
	}
}

func FromOrderList(orders []*orderdomain.Order) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, FromOrder(o))
	}
	return views
}
