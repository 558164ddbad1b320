package domain

import (
	"errors"
	"strings"

	"github.com/Apurer/go-gin-orders-api/internal/shared/projection"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is the buyer an order is placed for.
type Customer struct {
	ID       string
	Name     string
	Email    string
	Metadata projection.Metadata
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(name, email string) (*Customer, error) {
	c := &Customer{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces invariants on the entity.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
