package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/ports"
	inventoryapp "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/application"
	inventoryports "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

const (
	// PlaceOrderActivityName reserves stock and appends the order to the ledger.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeProductNotFound   = "ProductNotFound"
	ErrTypeInsufficientStock = "InsufficientStock"
	ErrTypeInvalidInput      = "InvalidInput"
)

// Activities groups activities that operate on the inventory service.
type Activities struct {
	service inventoryports.Service
}

// NewActivities wires the inventory service into the Temporal activities bundle.
func NewActivities(service inventoryports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the atomic reservation. Domain failures are returned as
// non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, input inventoryports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "productId", input.ProductID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "productId", input.ProductID, "quantity", input.Quantity)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "productId", input.ProductID, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// ToApplicationError tags the known inventory error kinds so they survive serialization.
func ToApplicationError(err error) error {
	var insufficient *catalogports.InsufficientStockError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &insufficient):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err, *insufficient)
	case errors.Is(err, catalogports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, err)
	case errors.Is(err, inventoryapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	default:
		return err
	}
}

// FromApplicationError restores the inventory error kinds from a workflow or activity failure.
func FromApplicationError(err error) error {
	var appErr *temporal.ApplicationError
	if err == nil || !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeInsufficientStock:
		var detail catalogports.InsufficientStockError
		if appErr.HasDetails() && appErr.Details(&detail) == nil {
			return &detail
		}
		return fmt.Errorf("%w: %s", catalogports.ErrInsufficientStock, appErr.Message())
	case ErrTypeProductNotFound:
		return fmt.Errorf("%w: %s", catalogports.ErrNotFound, appErr.Message())
	case ErrTypeInvalidInput:
		reason := strings.TrimPrefix(appErr.Message(), inventoryapp.ErrInvalidInput.Error()+": ")
		return fmt.Errorf("%w: %w", inventoryapp.ErrInvalidInput, errors.New(reason))
	default:
		return err
	}
}
