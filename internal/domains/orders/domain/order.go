package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
	"github.com/Apurer/go-gin-orders-api/internal/shared/projection"
)

// MaxQuantity bounds the units of one product in an order, merged duplicates
// included. Stock is kept in a 32-bit integer column.
const MaxQuantity = math.MaxInt32

var (
	ErrNoItems         = errors.New("order needs at least one item")
	ErrEmptyProductID  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEmptyCustomerID = errors.New("customer id is required")
)

// Item is one requested product and quantity.
type Item struct {
	ProductID string
	Quantity  int
}

// Line is a persisted order line. Price is the unit price captured when the
// order was placed and does not follow later product price changes.
type Line struct {
	ID        string
	ProductID *string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerRef is the customer snapshot loaded alongside an order.
type CustomerRef struct {
	ID    string
	Name  string
	Email string
}

// Order is an immutable record of a purchase. CustomerID and Line.ProductID
// become nil when the referenced row is deleted after the order was placed.
type Order struct {
	ID         string
	CustomerID *string
	Customer   *CustomerRef
	Lines      []Line
	Metadata   projection.Metadata
}

// NewOrder assembles a not yet persisted order for customerID.
func NewOrder(customerID string, lines []Line) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrEmptyCustomerID
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	id := customerID
	return &Order{CustomerID: &id, Lines: append([]Line(nil), lines...)}, nil
}

// Total sums every line subtotal.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.CustomerID != nil {
		id := *o.CustomerID
		clone.CustomerID = &id
	}
	if o.Customer != nil {
		ref := *o.Customer
		clone.Customer = &ref
	}
	clone.Lines = make([]Line, len(o.Lines))
	for i, line := range o.Lines {
		clone.Lines[i] = line
		if line.ProductID != nil {
			pid := *line.ProductID
			clone.Lines[i].ProductID = &pid
		}
	}
	return &clone
}

// NormalizeItems validates requested items and folds repeated product ids into
// one item whose quantity is the sum, keeping first-appearance order.
func NormalizeItems(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	index := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))
	for i, item := range items {
		id := identity.Canonical(item.ProductID)
		if id == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyProductID)
		}
		if item.Quantity <= 0 || item.Quantity > MaxQuantity {
			return nil, fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}
		if pos, ok := index[id]; ok {
			if out[pos].Quantity > MaxQuantity-item.Quantity {
				return nil, fmt.Errorf("item %d: %w: total for product %s exceeds %d", i, ErrInvalidQuantity, id, MaxQuantity)
			}
			out[pos].Quantity += item.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, Item{ProductID: id, Quantity: item.Quantity})
	}
	return out, nil
}

// ProductIDs lists the ids of items in order.
func ProductIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	return ids
}
