package domain

import (
	"errors"
	"math"
	"strings"
)

// Product is the catalog aggregate. Prices are in the smallest currency unit.
type Product struct {
	ID          string
	Name        string
	Price       int64
	Stock       int64
	Category    string
	Description string
}

// Attributes carries the caller-supplied fields of a new product.
type Attributes struct {
	Name        string
	Price       int64
	Stock       int64
	Category    string
	Description string
}

// SearchCriteria narrows a keyword search with optional inclusive price bounds.
type SearchCriteria struct {
	Keyword  string
	MinPrice *int64
	MaxPrice *int64
}

var (
	ErrEmptyID       = errors.New("product id is required")
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptyCategory = errors.New("product category is required")
	ErrNegativePrice = errors.New("product price must be greater or equal to zero")
	ErrNegativeStock = errors.New("product stock must be greater or equal to zero")
	ErrInvalidAmount = errors.New("quantity must be greater than zero")
	ErrStockOverflow = errors.New("product stock would exceed the maximum level")
)

// NewProduct validates the attributes and builds a Product with the given id.
func NewProduct(id string, attrs Attributes) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	p := &Product{ID: id, Description: attrs.Description}
	if err := p.Rename(attrs.Name); err != nil {
		return nil, err
	}
	if err := p.Recategorize(attrs.Category); err != nil {
		return nil, err
	}
	if err := p.Reprice(attrs.Price); err != nil {
		return nil, err
	}
	if err := p.SetStock(attrs.Stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename replaces the display name; blank names are rejected.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Recategorize moves the product to another category; blank categories are rejected.
func (p *Product) Recategorize(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	p.Category = category
	return nil
}

// Reprice sets the unit price; negative prices are rejected.
func (p *Product) Reprice(price int64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetStock overwrites the stock level.
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// CanReserve reports whether quantity units are available.
func (p *Product) CanReserve(quantity int64) bool {
	return quantity > 0 && p.Stock >= quantity
}

// Reserve takes quantity units out of stock. Callers check CanReserve first.
func (p *Product) Reserve(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidAmount
	}
	if p.Stock < quantity {
		return ErrNegativeStock
	}
	p.Stock -= quantity
	return nil
}

// Restock puts quantity units back, e.g. when a reservation is rolled back.
// Stock is left unchanged when the sum would not fit in an int64.
func (p *Product) Restock(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidAmount
	}
	if quantity > math.MaxInt64-p.Stock {
		return ErrStockOverflow
	}
	p.Stock += quantity
	return nil
}

// InCategory matches the category case-insensitively.
func (p *Product) InCategory(category string) bool {
	return strings.EqualFold(p.Category, category)
}

// Matches applies the keyword and price bounds of the criteria.
func (p *Product) Matches(criteria SearchCriteria) bool {
	keyword := strings.ToLower(criteria.Keyword)
	if !strings.Contains(strings.ToLower(p.Name), keyword) &&
		!strings.Contains(strings.ToLower(p.Description), keyword) {
		return false
	}
	if criteria.MinPrice != nil && p.Price < *criteria.MinPrice {
		return false
	}
	if criteria.MaxPrice != nil && p.Price > *criteria.MaxPrice {
		return false
	}
	return true
}
