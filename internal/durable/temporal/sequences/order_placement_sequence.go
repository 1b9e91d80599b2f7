package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	inventoryports "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-inventory-api/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the reservation activity for one order.
func RunOrderPlacementSequence(ctx workflow.Context, input inventoryports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "productId", input.ProductID)
	// Placement is not idempotent: a retried attempt could reserve twice.
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "productId", input.ProductID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
