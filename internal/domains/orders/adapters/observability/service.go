package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	created  metric.Int64Counter
	rejected metric.Int64Counter
	reserved metric.Int64Counter
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
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders placed"))
		s.rejected, _ = m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of order placements rejected, by reason"))
		s.reserved, _ = m.Int64Counter("orders.service.units_reserved", metric.WithDescription("Units of stock taken by placed orders"))
	}
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
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

func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(
		attribute.String("customer.id", input.CustomerID),
		attribute.Int("order.items", len(input.Items)),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		reason := RejectionReason(err)
		span.SetAttributes(attribute.String("order.rejection", reason))
		if s.rejected != nil {
			s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		}
		return nil, s.handleError(ctx, span, err, "order placement rejected",
			slog.String("customer.id", input.CustomerID),
			slog.String("reason", reason),
		)
	}

	units := 0
	for _, line := range result.Lines {
		units += line.Quantity
	}
	span.SetAttributes(attribute.String("order.id", result.ID), attribute.Int("order.units", units))
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	if s.reserved != nil {
		s.reserved.Add(ctx, int64(units))
	}
	s.log(ctx, slog.LevelInfo, "order placed",
		slog.String("order.id", result.ID),
		slog.String("customer.id", input.CustomerID),
		slog.Int("order.lines", len(result.Lines)),
		slog.String("order.total", result.Total().StringFixed(2)),
	)
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

// RejectionReason buckets a placement error for metrics and logs.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, application.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, application.ErrProductsNotFound):
		return "products_not_found"
	case errors.Is(err, application.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, application.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, application.ErrPersistence):
		return "persistence"
	default:
		return "unknown"
	}
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelWarn
	if errors.Is(err, application.ErrPersistence) {
		level = slog.LevelError
	}
	s.log(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

var _ ports.Service = (*Service)(nil)
