package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	customermemory "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	customersports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	ordermemory "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productmemory "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/persistence/postgres"
	productsports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/memtx"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

// Stores bundles the persistence adapters shared by every bounded context.
// All of them are backed by the same database (or the same process memory) so
// one Transactor spans them.
type Stores struct {
	Transactor  ordersports.Transactor
	Customers   customersports.Repository
	Products    productsports.Repository
	Orders      ordersports.Repository
	Idempotency ordersports.IdempotencyStore
	DB          *gorm.DB
}

// BuildStores connects to PostgreSQL when configured and applies the schema,
// falling back to in-memory stores otherwise.
func BuildStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, logger, cfg.PostgresDSN, platformpostgres.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to apply schema, falling back to in-memory stores", slog.String("error", err.Error()))
			cleanup()
			db = nil
			cleanup = func() {}
		}
	}
	if db == nil {
		return MemoryStores(), cleanup
	}
	logger.Info("stores configured with postgres")
	return &Stores{
		Transactor:  platformpostgres.NewTransactor(db),
		Customers:   customerpostgres.NewRepository(db),
		Products:    productpostgres.NewRepository(db),
		Orders:      orderpostgres.NewRepository(db),
		Idempotency: orderpostgres.NewIdempotencyStore(db),
		DB:          db,
	}, cleanup
}

// MemoryStores wires the in-memory adapters under one memtx transactor.
func MemoryStores() *Stores {
	return &Stores{
		Transactor:  memtx.NewTransactor(),
		Customers:   customermemory.NewRepository(),
		Products:    productmemory.NewRepository(),
		Orders:      ordermemory.NewRepository(),
		Idempotency: ordermemory.NewIdempotencyStore(),
	}
}
