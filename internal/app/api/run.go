package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	inventoryserver "github.com/Apurer/go-gin-inventory-api/go"

	catalogmemory "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/facade"
	inventoryobs "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/observability"
	inventoryworkflows "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/workflows"
	inventoryapp "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/application"
	inventoryports "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	ordermemory "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/adapters/memory"
	platformobservability "github.com/Apurer/go-gin-inventory-api/internal/platform/observability"
)

const serviceName = "inventory-api"

// Run boots the inventory HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service := buildService(cfg, instruments)

	var orderWorkflows inventoryports.OrderWorkflows = inventoryworkflows.NewInlineOrderWorkflows(service)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, placing orders inline")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorker := newOrderWorker(temporalClient, service)
		if err := orderWorker.Start(); err != nil {
			logger.Warn("Temporal worker failed to start, placing orders inline", slog.String("error", err.Error()))
		} else {
			defer orderWorker.Stop()
			orderWorkflows = inventoryworkflows.NewTemporalOrderWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	api := facade.New(service, facade.WithOrderWorkflows(orderWorkflows))
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Inventory API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("Inventory API shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("Inventory API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildService(cfg Config, instruments *platformobservability.Instruments) inventoryports.Service {
	catalog := catalogmemory.NewStore()
	if cfg.SeedCatalog {
		catalog = catalogmemory.NewSeededStore()
	}
	core := inventoryapp.NewService(catalog, ordermemory.NewLedger())
	return inventoryobs.New(
		core,
		inventoryobs.WithLogger(instruments.Logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
}

func newRouter(api *facade.Facade) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	handlers := inventoryserver.ApiHandleFunctions{
		InventoryAPI: inventoryserver.NewInventoryAPI(api),
	}
	return inventoryserver.NewRouterWithGinEngine(engine, handlers)
}
