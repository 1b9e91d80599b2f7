package api

import (
	"log/slog"
	"os"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	inventoryports "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderworkflows "github.com/Apurer/go-gin-inventory-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-gin-inventory-api/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-inventory-api/internal/platform/temporal/activities/orders"
)

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// newOrderWorker hosts the placement workflow in this process. The catalog
// lives in memory, so activities must run next to the HTTP server that owns it.
func newOrderWorker(c client.Client, service inventoryports.Service) worker.Worker {
	w := worker.New(c, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderactivities.NewActivities(service).PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return w
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
