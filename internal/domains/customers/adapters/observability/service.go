package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

const tracerName = "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/observability/service"

// Service decorates the customer service with tracing, logging, and metrics.
type Service struct {
	inner      ports.Service
	tracer     trace.Tracer
	logger     *slog.Logger
	registered metric.Int64Counter
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
		s.registered, _ = m.Int64Counter("customers.service.registered", metric.WithDescription("Number of customers registered"))
	}
}

// New wraps the core customer service.
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

func (s *Service) Register(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register customer")
	}
	span.SetAttributes(attribute.String("customer.id", result.ID))
	if s.registered != nil {
		s.registered.Add(ctx, 1)
	}
	s.log(ctx, slog.LevelInfo, "customer registered", slog.String("customer.id", result.ID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetByID", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", id))
	}
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
