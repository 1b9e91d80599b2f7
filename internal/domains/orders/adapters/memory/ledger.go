package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/orders/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger is an in-memory order ledger. One lock covers id assignment and
// storage, so id order and insertion order are the same.
type Ledger struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	clone.ID = l.nextID
	l.orders = append(l.orders, clone)
	return &clone, nil
}

func (l *Ledger) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	// ids are dense from 1, so the id doubles as a position.
	if id <= 0 || id > int64(len(l.orders)) {
		return nil, ports.ErrNotFound
	}
	clone := l.orders[id-1]
	return &clone, nil
}

func (l *Ledger) List(_ context.Context) ([]*domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	list := make([]*domain.Order, 0, len(l.orders))
	for i := range l.orders {
		clone := l.orders[i]
		list = append(list, &clone)
	}
	return list, nil
}
