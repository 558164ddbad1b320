package mapper

import (
	"time"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

const priceScale = 2

// OrderItem is one requested product in the create body.
type OrderItem struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrder is the order placement request body.
type CreateOrder struct {
	CustomerID string      `json:"customer_id" binding:"required"`
	Products   []OrderItem `json:"products" binding:"required,min=1,dive"`
}

// Customer is the customer snapshot embedded in an order.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderProduct is one order line.
type OrderProduct struct {
	ID        string  `json:"id"`
	ProductID *string `json:"product_id"`
	Price     string  `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the transport representation of an order.
type Order struct {
	ID            string         `json:"id"`
	CustomerID    *string        `json:"customer_id"`
	Customer      *Customer      `json:"customer"`
	OrderProducts []OrderProduct `json:"order_products"`
	Total         string         `json:"total"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToCreateInput converts the request body and Idempotency-Key header into the use case input.
func ToCreateInput(body CreateOrder, idempotencyKey string) ports.CreateOrderInput {
	items := make([]domain.Item, 0, len(body.Products))
	for _, p := range body.Products {
		items = append(items, domain.Item{ProductID: p.ID, Quantity: p.Quantity})
	}
	return ports.CreateOrderInput{
		CustomerID:     body.CustomerID,
		Items:          items,
		IdempotencyKey: idempotencyKey,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		OrderProducts: make([]OrderProduct, 0, len(order.Lines)),
		Total:         order.Total().StringFixed(priceScale),
		CreatedAt:     order.Metadata.CreatedAt,
		UpdatedAt:     order.Metadata.UpdatedAt,
	}
	if order.Customer != nil {
		out.Customer = &Customer{ID: order.Customer.ID, Name: order.Customer.Name, Email: order.Customer.Email}
	}
	for _, line := range order.Lines {
		out.OrderProducts = append(out.OrderProducts, OrderProduct{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price.StringFixed(priceScale),
			Quantity:  line.Quantity,
		})
	}
	return out
}
