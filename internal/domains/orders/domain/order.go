package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Status enumerates order progression. This service only creates pending orders;
// the other states belong to the fulfilment workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrEmptyCustomer    = errors.New("customer name is required")
	ErrInvalidPrice     = errors.New("unit price must be greater or equal to zero")
	ErrTotalOverflow    = errors.New("order total exceeds the supported range")
	ErrInvalidStatus    = errors.New("order status is invalid")
)

// ProductSnapshot is the product state captured when the order is placed.
type ProductSnapshot struct {
	ID        string
	Name      string
	UnitPrice int64
}

// Order is an immutable record of a purchase.
type Order struct {
	ID           int64
	ProductID    string
	ProductName  string
	Quantity     int64
	TotalPrice   int64
	CustomerName string
	Status       Status
	CreatedAt    time.Time
}

// NewOrder freezes the snapshot and computes the total. The ledger assigns the id.
func NewOrder(product ProductSnapshot, quantity int64, customerName string, createdAt time.Time) (*Order, error) {
	if strings.TrimSpace(product.ID) == "" {
		return nil, ErrInvalidProductID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomer
	}
	if product.UnitPrice < 0 {
		return nil, ErrInvalidPrice
	}
	if product.UnitPrice > 0 && quantity > math.MaxInt64/product.UnitPrice {
		return nil, ErrTotalOverflow
	}
	order := &Order{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     quantity,
		TotalPrice:   product.UnitPrice * quantity,
		CustomerName: customerName,
		Status:       StatusPending,
		CreatedAt:    createdAt,
	}
	return order, nil
}

// Validate enforces invariants on the record.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ProductID) == "" {
		return ErrInvalidProductID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return ErrEmptyCustomer
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusFulfilled, StatusCancelled:
		return true
	default:
		return false
	}
}
