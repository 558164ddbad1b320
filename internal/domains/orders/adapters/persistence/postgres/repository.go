package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
	"github.com/Apurer/go-gin-orders-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their lines in PostgreSQL using GORM. Schema
// is owned by internal/platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID    string `gorm:"primaryKey;column:id;type:uuid"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email"`
}

func (customerRecord) TableName() string { return "customers" }

// orderRecord maps the order header; customer_id turns NULL when the customer is deleted.
type orderRecord struct {
	ID         string               `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID *string              `gorm:"column:customer_id;type:uuid"`
	Customer   *customerRecord      `gorm:"foreignKey:CustomerID;references:ID"`
	Lines      []orderProductRecord `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt  time.Time            `gorm:"column:created_at"`
	UpdatedAt  time.Time            `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderProductRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   *string         `gorm:"column:order_id;type:uuid"`
	ProductID *string         `gorm:"column:product_id;type:uuid"`
	Position  int             `gorm:"column:position"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2)"`
	Quantity  int             `gorm:"column:quantity"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderProductRecord) TableName() string { return "orders_products" }

// Create inserts the header and every line in one transaction, or a savepoint
// of the caller's.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if len(order.Lines) == 0 {
		return nil, domain.ErrNoItems
	}
	header, lines := toRecords(order)
	err := platformpostgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&header).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	header.Lines = lines
	created := header.toDomain()
	created.Customer = order.Customer
	return created, nil
}

// GetByID fetches an order with its lines in insertion order and the customer, if still present.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	id, ok := identity.CanonicalUUID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	var record orderRecord
	err := platformpostgres.Conn(ctx, r.db).
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecords(order *domain.Order) (orderRecord, []orderProductRecord) {
	header := orderRecord{ID: order.ID, CustomerID: order.CustomerID}
	if header.ID == "" {
		header.ID = uuid.NewString()
	}
	orderID := header.ID
	lines := make([]orderProductRecord, 0, len(order.Lines))
	for i, line := range order.Lines {
		id := line.ID
		if id == "" {
			id = uuid.NewString()
		}
		lines = append(lines, orderProductRecord{
			ID:        id,
			OrderID:   &orderID,
			ProductID: line.ProductID,
			Position:  i,
			Price:     line.Price.Round(2),
			Quantity:  line.Quantity,
		})
	}
	return header, lines
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Lines:      make([]domain.Line, 0, len(r.Lines)),
		Metadata:   projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
	if r.Customer != nil {
		order.Customer = &domain.CustomerRef{ID: r.Customer.ID, Name: r.Customer.Name, Email: r.Customer.Email}
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return order
}
