package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_SnapshotsProduct(t *testing.T) {
	createdAt := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	order, err := NewOrder(ProductSnapshot{ID: "2", Name: "iPhone 15 Pro", UnitPrice: 20000000}, 2, "Budi", createdAt)
	require.NoError(t, err)
	require.Equal(t, int64(40000000), order.TotalPrice)
	require.Equal(t, "iPhone 15 Pro", order.ProductName)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, createdAt, order.CreatedAt)
	require.Zero(t, order.ID)
	require.NoError(t, order.Validate())
}

func TestNewOrder_RejectsInvalidInput(t *testing.T) {
	snap := ProductSnapshot{ID: "1", Name: "Laptop", UnitPrice: 10}

	_, err := NewOrder(snap, 0, "Budi", time.Now())
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = NewOrder(snap, 1, "  ", time.Now())
	require.ErrorIs(t, err, ErrEmptyCustomer)
	_, err = NewOrder(ProductSnapshot{Name: "x"}, 1, "Budi", time.Now())
	require.ErrorIs(t, err, ErrInvalidProductID)
	_, err = NewOrder(ProductSnapshot{ID: "1", UnitPrice: math.MaxInt64}, 2, "Budi", time.Now())
	require.ErrorIs(t, err, ErrTotalOverflow)
}

func TestOrder_ValidateStatus(t *testing.T) {
	order := &Order{ProductID: "1", Quantity: 1, CustomerName: "Budi", Status: "shipped"}
	require.ErrorIs(t, order.Validate(), ErrInvalidStatus)
	order.Status = StatusCancelled
	require.NoError(t, order.Validate())
}
