package mapper

import (
	"time"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

// CreateCustomer is the registration request body.
type CreateCustomer struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Customer is the transport representation of a customer.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToRegisterInput converts the request body into the use case input.
func ToRegisterInput(body CreateCustomer) ports.RegisterCustomerInput {
	return ports.RegisterCustomerInput{Name: body.Name, Email: body.Email}
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *domain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.Metadata.CreatedAt,
		UpdatedAt: customer.Metadata.UpdatedAt,
	}
}
