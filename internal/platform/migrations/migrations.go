package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the customers, products and orders contexts.
// Foreign keys from orders and order lines cascade on update and set the
// referencing column to NULL on delete, so deleting a customer or product never
// removes order history.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&productRecord{},
		&orderRecord{},
		&orderProductRecord{},
		&idempotencyRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz"`
}

func (customerRecord) TableName() string { return "customers" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name;not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null;check:quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at;type:timestamptz"`
	UpdatedAt time.Time       `gorm:"column:updated_at;type:timestamptz"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string          `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID *string         `gorm:"column:customer_id;type:uuid;index"`
	Customer   *customerRecord `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt  time.Time       `gorm:"column:created_at;type:timestamptz;index"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;type:timestamptz"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema mirrors the orders Postgres adapter.
type orderProductRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   *string         `gorm:"column:order_id;type:uuid;index"`
	Order     *orderRecord    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ProductID *string         `gorm:"column:product_id;type:uuid;index"`
	Product   *productRecord  `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Position  int             `gorm:"column:position;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null;check:quantity > 0"`
	CreatedAt time.Time       `gorm:"column:created_at;type:timestamptz"`
	UpdatedAt time.Time       `gorm:"column:updated_at;type:timestamptz"`
}

func (orderProductRecord) TableName() string { return "orders_products" }

// Idempotency schema mirrors the orders idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     string    `gorm:"column:order_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }
