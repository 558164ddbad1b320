package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

const tracerName = "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/observability/service"

// Service decorates the product service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	created  metric.Int64Counter
	restocks metric.Int64Counter
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
		s.created, _ = m.Int64Counter("products.service.created", metric.WithDescription("Number of products created"))
		s.restocks, _ = m.Int64Counter("products.service.stock_adjustments", metric.WithDescription("Number of quantity overwrites applied"))
	}
}

// New wraps the core product service.
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

func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Create", trace.WithAttributes(attribute.String("product.name", input.Name)))
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	span.SetAttributes(attribute.String("product.id", result.ID))
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	s.log(ctx, slog.LevelInfo, "product created",
		slog.String("product.id", result.ID),
		slog.Int("product.quantity", result.Quantity),
	)
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) SetStock(ctx context.Context, adjustments []ports.QuantityAdjustment) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SetStock", trace.WithAttributes(attribute.Int("products.count", len(adjustments))))
	defer span.End()

	result, err := s.inner.SetStock(ctx, adjustments)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set stock")
	}
	if s.restocks != nil {
		s.restocks.Add(ctx, int64(len(result)))
	}
	s.log(ctx, slog.LevelInfo, "stock updated", slog.Int("products.count", len(result)))
	return result, nil
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
	s.log(ctx, slog.LevelWarn, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

var _ ports.Service = (*Service)(nil)
