package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

// CreateProduct is the product creation request body. Price accepts a JSON
// number or a decimal string.
type CreateProduct struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"gte=0"`
}

// StockEntry overwrites the quantity of one product. The stock endpoint
// accepts a JSON array of entries.
type StockEntry struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

// Product is the transport representation of a product.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCreateInput(body CreateProduct) ports.CreateProductInput {
	return ports.CreateProductInput{Name: body.Name, Price: body.Price, Quantity: body.Quantity}
}

func ToAdjustments(entries []StockEntry) []ports.QuantityAdjustment {
	out := make([]ports.QuantityAdjustment, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ports.QuantityAdjustment{ProductID: entry.ID, Quantity: entry.Quantity})
	}
	return out
}

// FromDomainProduct renders the price with two decimals.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price.StringFixed(domain.PriceScale),
		Quantity:  product.Quantity,
		CreatedAt: product.Metadata.CreatedAt,
		UpdatedAt: product.Metadata.UpdatedAt,
	}
}

func FromDomainProducts(products []*domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}
