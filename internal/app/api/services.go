package api

import (
	customersobs "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/observability"
	customersapp "github.com/Apurer/go-gin-orders-api/internal/domains/customers/application"
	customersports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	ordersobs "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productsobs "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/observability"
	productsapp "github.com/Apurer/go-gin-orders-api/internal/domains/products/application"
	productsports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
)

// Services holds the decorated use case services of every bounded context.
type Services struct {
	Customers customersports.Service
	Products  productsports.Service
	Orders    ordersports.Service
}

// BuildServices wires the application services over stores and wraps each in
// its observability decorator.
func BuildServices(stores *Stores, instruments *platformobservability.Instruments) Services {
	logger := instruments.Logger
	customers := customersobs.New(
		customersapp.NewService(stores.Customers),
		customersobs.WithLogger(logger),
		customersobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customersobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	products := productsobs.New(
		productsapp.NewService(stores.Products),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	orders := ordersobs.New(
		ordersapp.NewService(stores.Transactor, stores.Customers, stores.Products, stores.Orders,
			ordersapp.WithIdempotencyStore(stores.Idempotency)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return Services{Customers: customers, Products: products, Orders: orders}
}
