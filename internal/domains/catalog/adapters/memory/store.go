package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory catalog. The index lock guards membership and insertion
// order; each product has its own lock so reservations on different ids do not
// contend with each other.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ordered []*entry
	newID   func() string
}

type entry struct {
	mu      sync.RWMutex
	product domain.Product
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator overrides how fresh product ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore constructs an empty catalog.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: map[string]*entry{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewSeededStore returns a catalog preloaded with SeedProducts.
func NewSeededStore(opts ...Option) *Store {
	s := NewStore(opts...)
	for _, p := range SeedProducts() {
		s.put(p)
	}
	return s
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.Product, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return e.snapshot(), nil
}

// List returns every product in insertion order.
func (s *Store) List(_ context.Context) ([]*domain.Product, error) {
	return s.collect(func(*domain.Product) bool { return true }), nil
}

func (s *Store) FindByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	return s.collect(func(p *domain.Product) bool { return p.InCategory(category) }), nil
}

func (s *Store) Search(_ context.Context, criteria domain.SearchCriteria) ([]*domain.Product, error) {
	return s.collect(func(p *domain.Product) bool { return p.Matches(criteria) }), nil
}

// Insert validates the attributes and stores the product under a fresh id.
func (s *Store) Insert(_ context.Context, attrs domain.Attributes) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	if _, taken := s.entries[id]; taken {
		return nil, errors.New("product id generator returned a duplicate id")
	}
	product, err := domain.NewProduct(id, attrs)
	if err != nil {
		return nil, err
	}
	e := &entry{product: *product}
	s.entries[id] = e
	s.ordered = append(s.ordered, e)
	clone := *product
	return &clone, nil
}

func (s *Store) TryReserve(_ context.Context, id string, quantity int64) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	e, ok := s.lookup(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.product.CanReserve(quantity) {
		return nil, &ports.InsufficientStockError{ProductID: id, Requested: quantity, Available: e.product.Stock}
	}
	if err := e.product.Reserve(quantity); err != nil {
		return nil, err
	}
	clone := e.product
	return &clone, nil
}

func (s *Store) Release(_ context.Context, id string, quantity int64) (*domain.Product, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.product.Restock(quantity); err != nil {
		return nil, err
	}
	clone := e.product
	return &clone, nil
}

// SetStock overwrites the stock level; negative values leave the product untouched.
func (s *Store) SetStock(_ context.Context, id string, stock int64) (*domain.Product, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.product.SetStock(stock); err != nil {
		return nil, err
	}
	clone := e.product
	return &clone, nil
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Store) collect(keep func(*domain.Product) bool) []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Product, 0, len(s.ordered))
	for _, e := range s.ordered {
		p := e.snapshot()
		if keep(p) {
			list = append(list, p)
		}
	}
	return list
}

// put stores a fully built product under its own id, replacing nothing.
func (s *Store) put(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[p.ID]; ok {
		return
	}
	e := &entry{product: p}
	s.entries[p.ID] = e
	s.ordered = append(s.ordered, e)
}

func (e *entry) snapshot() *domain.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	clone := e.product
	return &clone
}
