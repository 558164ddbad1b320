package postgres

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
	"github.com/Apurer/go-gin-orders-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM. Schema is owned by
// internal/platform/migrations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

type productRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2)"`
	Quantity  int             `gorm:"column:quantity"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := platformpostgres.Conn(ctx, r.db).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	id, ok := identity.CanonicalUUID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	var record productRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByName returns nil when no product carries the name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	err := platformpostgres.Conn(ctx, r.db).First(&record, "lower(name) = lower(?)", strings.TrimSpace(name)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindManyByID loads every existing product among ids in one round trip.
func (r *Repository) FindManyByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	valid := platformpostgres.ValidUUIDs(ids)
	if len(valid) == 0 {
		return []*domain.Product{}, nil
	}
	var records []productRecord
	if err := platformpostgres.Conn(ctx, r.db).
		Where("id = ANY(?)", pq.Array(valid)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

// ApplyQuantities overwrites quantities inside one transaction (a savepoint when
// the caller already runs one).
func (r *Repository) ApplyQuantities(ctx context.Context, adjustments []ports.QuantityAdjustment) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	now := r.now().UTC()
	out := make([]*domain.Product, 0, len(adjustments))
	err := platformpostgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, adj := range adjustments {
			id, ok := identity.CanonicalUUID(adj.ProductID)
			if !ok {
				return &ports.MissingProductError{ProductID: adj.ProductID}
			}
			var record productRecord
			result := tx.Model(&record).
				Clauses(clause.Returning{}).
				Where("id = ?", id).
				Updates(map[string]any{"quantity": adj.Quantity, "updated_at": now})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &ports.MissingProductError{ProductID: adj.ProductID}
			}
			out = append(out, record.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReserveStock issues one conditional decrement per product, in ascending id
// order so concurrent reservations lock rows in the same sequence. A decrement
// that matches no row means the stock moved below the request; the enclosing
// transaction is then rolled back in full.
func (r *Repository) ReserveStock(ctx context.Context, reservations []ports.StockReservation) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	merged := mergeReservations(reservations)
	now := r.now().UTC()
	out := make([]*domain.Product, 0, len(merged))
	err := platformpostgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, res := range merged {
			if _, ok := identity.CanonicalUUID(res.ProductID); !ok {
				return &ports.MissingProductError{ProductID: res.ProductID}
			}
			var record productRecord
			result := tx.Model(&record).
				Clauses(clause.Returning{}).
				Where("id = ? AND quantity >= ?", res.ProductID, res.Quantity).
				Updates(map[string]any{
					"quantity":   gorm.Expr("quantity - ?", res.Quantity),
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shortage(tx, res)
			}
			out = append(out, record.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func shortage(tx *gorm.DB, res ports.StockReservation) error {
	var current productRecord
	if err := tx.Select("id", "quantity").First(&current, "id = ?", res.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ports.MissingProductError{ProductID: res.ProductID}
		}
		return err
	}
	return &ports.StockShortageError{
		ProductID: res.ProductID,
		Requested: res.Quantity,
		Available: current.Quantity,
	}
}

func mergeReservations(reservations []ports.StockReservation) []ports.StockReservation {
	totals := make(map[string]int, len(reservations))
	for _, res := range reservations {
		totals[identity.Canonical(res.ProductID)] += res.Quantity
	}
	merged := make([]ports.StockReservation, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, ports.StockReservation{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price.Round(domain.PriceScale),
		Quantity: product.Quantity,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Quantity: r.Quantity,
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
