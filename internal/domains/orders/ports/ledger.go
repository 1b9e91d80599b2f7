package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Ledger is the append-only history of placed orders.
type Ledger interface {
	// Append assigns the next sequential id and stores the order.
	Append(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
