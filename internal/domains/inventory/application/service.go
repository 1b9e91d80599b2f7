package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/ports"
)

// Service coordinates the catalog and the ledger. It keeps no state of its own;
// it is the only place a stock change and a ledger append happen together.
type Service struct {
	catalog catalogports.Store
	ledger  orderports.Ledger
	now     func() time.Time
}

// Option customises the Service.
type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the inventory service with its stores.
func NewService(catalog catalogports.Store, ledger orderports.Ledger, opts ...Option) *Service {
	s := &Service{catalog: catalog, ledger: ledger, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder reserves stock and records the order as one unit. On any failure
// the catalog and the ledger are left as they were before the call.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*orderdomain.Order, error) {
	if input.Quantity <= 0 {
		return nil, mapError(orderdomain.ErrInvalidQuantity)
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, mapError(orderdomain.ErrEmptyCustomer)
	}
	reserved, err := s.catalog.TryReserve(ctx, input.ProductID, input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	snapshot := orderdomain.ProductSnapshot{ID: reserved.ID, Name: reserved.Name, UnitPrice: reserved.Price}
	order, err := orderdomain.NewOrder(snapshot, input.Quantity, input.CustomerName, s.now().UTC())
	if err != nil {
		return nil, s.rollback(ctx, input, mapError(err))
	}
	saved, err := s.ledger.Append(ctx, order)
	if err != nil {
		return nil, s.rollback(ctx, input, fmt.Errorf("append order: %w", mapError(err)))
	}
	return saved, nil
}

func (s *Service) rollback(ctx context.Context, input ports.PlaceOrderInput, cause error) error {
	// The release must run even when the caller has already gone away.
	if _, err := s.catalog.Release(context.WithoutCancel(ctx), input.ProductID, input.Quantity); err != nil {
		return errors.Join(cause, fmt.Errorf("release reservation for product %s: %w", input.ProductID, err))
	}
	return cause
}

// AdjustStock overwrites a product's stock level.
func (s *Service) AdjustStock(ctx context.Context, productID string, newStock int64) (*catalogdomain.Product, error) {
	product, err := s.catalog.SetStock(ctx, productID, newStock)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// AddProduct inserts a new catalog entry.
func (s *Service) AddProduct(ctx context.Context, attrs catalogdomain.Attributes) (*catalogdomain.Product, error) {
	product, err := s.catalog.Insert(ctx, attrs)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	return s.catalog.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	return s.catalog.GetByID(ctx, id)
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error) {
	return s.catalog.FindByCategory(ctx, category)
}

func (s *Service) SearchProducts(ctx context.Context, criteria catalogdomain.SearchCriteria) ([]*catalogdomain.Product, error) {
	return s.catalog.Search(ctx, criteria)
}

func (s *Service) ListOrders(ctx context.Context) ([]*orderdomain.Order, error) {
	return s.ledger.List(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*orderdomain.Order, error) {
	return s.ledger.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
