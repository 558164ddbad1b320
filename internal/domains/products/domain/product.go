package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-orders-api/internal/shared/projection"
)

const (
	// PriceScale is the number of decimal places prices are stored with.
	PriceScale = 2
	// MaxQuantity is the largest stock the integer quantity column holds.
	MaxQuantity = math.MaxInt32
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrQuantityTooLarge = errors.New("quantity exceeds the storable maximum")
)

// Product is a sellable item together with its quantity on hand.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Metadata projection.Metadata
}

// NewProduct validates and constructs a product. The price is rounded to cents.
func NewProduct(name string, price decimal.Decimal, quantity int) (*Product, error) {
	p := &Product{
		Name:     strings.TrimSpace(name),
		Price:    price.Round(PriceScale),
		Quantity: quantity,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants on the entity.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if p.Quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// HasStock reports whether quantity units can be taken from stock.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Quantity >= quantity
}

// Clone returns an independent copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
