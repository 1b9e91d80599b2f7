package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
	orderworkflows "github.com/Apurer/go-gin-inventory-api/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/Apurer/go-gin-inventory-api/internal/platform/temporal/activities/orders"
)

var (
	_ ports.OrderWorkflows = (*TemporalOrderWorkflows)(nil)
	_ ports.OrderWorkflows = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows runs order placement on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the placement workflow and waits for its result.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*orderdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-placement-%s-%s", input.ProductID, uuid.NewString()),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflowName,
		orderworkflows.OrderPlacementWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		return nil, err
	}
	// The workflow outlives a dropped caller, so the wait does too; otherwise the
	// reply could report a failure for an order the ledger already holds.
	var order orderdomain.Order
	if err := run.Get(context.WithoutCancel(ctx), &order); err != nil {
		return nil, orderactivities.FromApplicationError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows calls the service directly, for tests and when Temporal is unavailable.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the inventory service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*orderdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
