package memory

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/orders/ports"
)

func newOrder(t *testing.T, customer string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.ProductSnapshot{ID: "1", Name: "Laptop", UnitPrice: 100}, 1, customer, time.Now())
	require.NoError(t, err)
	return order
}

func TestLedger_AppendAssignsSequentialIDs(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	first, err := ledger.Append(ctx, newOrder(t, "Ani"))
	require.NoError(t, err)
	second, err := ledger.Append(ctx, newOrder(t, "Budi"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	got, err := ledger.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.CustomerName)

	_, err = ledger.GetByID(ctx, 3)
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = ledger.GetByID(ctx, 0)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestLedger_AppendRejectsInvalidOrder(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	_, err := ledger.Append(ctx, &domain.Order{ProductID: "1", Quantity: 0, CustomerName: "x", Status: domain.StatusPending})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = ledger.Append(ctx, nil)
	require.Error(t, err)

	saved, err := ledger.Append(ctx, newOrder(t, "Ani"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID, "rejected appends must not consume ids")
}

func TestLedger_ReturnsCopies(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	saved, err := ledger.Append(ctx, newOrder(t, "Ani"))
	require.NoError(t, err)
	saved.TotalPrice = 1

	got, err := ledger.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalPrice)
}

func TestLedger_ConcurrentAppendsAreUniqueAndOrdered(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := ledger.Append(ctx, newOrder(t, "Ani"))
			if err != nil {
				t.Errorf("append: %v", err)
				return
			}
			ids <- saved.ID
		}()
	}
	wg.Wait()
	close(ids)

	var got []int64
	for id := range ids {
		got = append(got, id)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	require.Len(t, got, n)
	for i, id := range got {
		assert.Equal(t, int64(i+1), id)
	}

	list, err := ledger.List(ctx)
	require.NoError(t, err)
	for i, order := range list {
		assert.Equal(t, int64(i+1), order.ID)
	}
}
