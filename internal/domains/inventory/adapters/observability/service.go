package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/ports"
	inventoryports "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/ports"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

const tracerName = "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/adapters/observability"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   inventoryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input inventoryports.PlaceOrderInput) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.PlaceOrder",
		trace.WithAttributes(attribute.String("product.id", input.ProductID), attribute.Int64("order.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("product.id", input.ProductID), slog.Int64("order.quantity", input.Quantity))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		var insufficient *catalogports.InsufficientStockError
		if errors.As(err, &insufficient) {
			span.SetAttributes(attribute.Int64("product.stock.available", insufficient.Available))
			s.metrics.recordRejected(ctx, "insufficient_stock")
		}
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("product.id", input.ProductID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.Int64("order.total_price", result.TotalPrice))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID),
		slog.String("product.id", result.ProductID),
		slog.Int64("order.total_price", result.TotalPrice))
	return result, nil
}

func (s *Service) AdjustStock(ctx context.Context, productID string, newStock int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AdjustStock",
		trace.WithAttributes(attribute.String("product.id", productID), attribute.Int64("product.stock", newStock)))
	defer span.End()

	s.logInfo(ctx, "adjusting stock", slog.String("product.id", productID), slog.Int64("product.stock", newStock))
	result, err := s.inner.AdjustStock(ctx, productID, newStock)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust stock", slog.String("product.id", productID))
	}
	s.metrics.recordAdjusted(ctx)
	return result, nil
}

func (s *Service) AddProduct(ctx context.Context, attrs catalogdomain.Attributes) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AddProduct",
		trace.WithAttributes(attribute.String("product.category", attrs.Category)))
	defer span.End()

	s.logInfo(ctx, "adding product", slog.String("product.name", attrs.Name), slog.String("product.category", attrs.Category))
	result, err := s.inner.AddProduct(ctx, attrs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.String("product.name", attrs.Name))
	}
	span.SetAttributes(attribute.String("product.id", result.ID))
	s.metrics.recordAdded(ctx, result.Category)
	s.logInfo(ctx, "product added", slog.String("product.id", result.ID))
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ProductsByCategory", trace.WithAttributes(attribute.String("product.category", category)))
	defer span.End()

	result, err := s.inner.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to filter products", slog.String("product.category", category))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) SearchProducts(ctx context.Context, criteria catalogdomain.SearchCriteria) ([]*catalogdomain.Product, error) {
	attrs := []attribute.KeyValue{attribute.String("search.keyword", criteria.Keyword)}
	if criteria.MinPrice != nil {
		attrs = append(attrs, attribute.Int64("search.min_price", *criteria.MinPrice))
	}
	if criteria.MaxPrice != nil {
		attrs = append(attrs, attribute.Int64("search.max_price", *criteria.MaxPrice))
	}
	ctx, span := s.tracer.Start(ctx, "InventoryService.SearchProducts", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := s.inner.SearchProducts(ctx, criteria)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("search.keyword", criteria.Keyword))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced         metric.Int64Counter
	unitsReserved        metric.Int64Counter
	reservationsRejected metric.Int64Counter
	productsAdded        metric.Int64Counter
	stockAdjusted        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("inventory.orders_placed", metric.WithDescription("Number of orders placed"))
	unitsReserved, _ := m.Int64Counter("inventory.units_reserved", metric.WithDescription("Stock units moved into orders"))
	rejected, _ := m.Int64Counter("inventory.reservations_rejected", metric.WithDescription("Number of rejected reservations"))
	added, _ := m.Int64Counter("inventory.products_added", metric.WithDescription("Number of products added to the catalog"))
	adjusted, _ := m.Int64Counter("inventory.stock_adjusted", metric.WithDescription("Number of administrative stock corrections"))
	return serviceMetrics{
		ordersPlaced:         ordersPlaced,
		unitsReserved:        unitsReserved,
		reservationsRejected: rejected,
		productsAdded:        added,
		stockAdjusted:        adjusted,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *orderdomain.Order) {
	attrs := metric.WithAttributes(attribute.String("product.id", order.ProductID))
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, attrs)
	}
	if m.unitsReserved != nil {
		m.unitsReserved.Add(ctx, order.Quantity, attrs)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.reservationsRejected != nil {
		m.reservationsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context, category string) {
	if m.productsAdded != nil {
		m.productsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("product.category", category)))
	}
}

func (m serviceMetrics) recordAdjusted(ctx context.Context) {
	if m.stockAdjusted != nil {
		m.stockAdjusted.Add(ctx, 1)
	}
}

var _ inventoryports.Service = (*Service)(nil)
