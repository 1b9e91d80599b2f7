package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a rejected reservation and the stock seen at the time.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// Is lets callers match the kind with errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Store owns the product records and their stock levels.
type Store interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Product, error)
	Insert(ctx context.Context, attrs domain.Attributes) (*domain.Product, error)
	// TryReserve checks and decrements stock as one step. It returns
	// *InsufficientStockError or ErrNotFound without side effects.
	TryReserve(ctx context.Context, id string, quantity int64) (*domain.Product, error)
	// Release undoes a reservation made by TryReserve.
	Release(ctx context.Context, id string, quantity int64) (*domain.Product, error)
	SetStock(ctx context.Context, id string, stock int64) (*domain.Product, error)
}
