package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
)

// errKeyClaimed aborts a unit of work whose idempotency key was taken by a
// concurrent request that committed first.
var errKeyClaimed = errors.New("idempotency key claimed concurrently")

// Service places and loads orders.
type Service struct {
	tx          ports.Transactor
	customers   ports.CustomerReader
	products    ports.ProductStock
	orders      ports.Repository
	idempotency ports.IdempotencyStore
}

// Option customises the service.
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key handling on CreateOrder.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(tx ports.Transactor, customers ports.CustomerReader, products ports.ProductStock, orders ports.Repository, opts ...Option) *Service {
	s := &Service{tx: tx, customers: customers, products: products, orders: orders}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the request against the customer and product stores,
// reserves stock and persists the order in a single unit of work. Either every
// line is stored and all stock decremented, or nothing changes.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	customerID := identity.Canonical(input.CustomerID)
	if customerID == "" {
		return nil, mapError(domain.ErrEmptyCustomerID)
	}
	items, err := domain.NormalizeItems(input.Items)
	if err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if s.idempotency == nil {
		key = ""
	}
	hash := ""
	if key != "" {
		hash = Fingerprint(customerID, items)
	}

	var placed *domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if key != "" {
			replayed, err := s.replay(ctx, key, hash)
			if err != nil || replayed != nil {
				placed = replayed
				return err
			}
		}
		order, err := s.place(ctx, customerID, items)
		if err != nil {
			return err
		}
		if key != "" {
			if err := s.claim(ctx, key, hash, order.ID); err != nil {
				return err
			}
		}
		placed = order
		return nil
	})
	if errors.Is(err, errKeyClaimed) {
		placed, err = s.replay(ctx, key, hash)
		if err == nil && placed == nil {
			err = errKeyClaimed
		}
	}
	if err != nil {
		return nil, persistence("commit order", err)
	}
	return placed, nil
}

// place runs the validate-then-mutate sequence. It must run inside a unit of work.
func (s *Service) place(ctx context.Context, customerID string, items []domain.Item) (*domain.Order, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: customerID}
		}
		return nil, persistence("load customer", err)
	}

	ids := domain.ProductIDs(items)
	found, err := s.products.FindManyByID(ctx, ids)
	if err != nil {
		return nil, persistence("load products", err)
	}
	byID := make(map[string]*productdomain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &ProductsNotFoundError{IDs: missing}
	}

	reservations := make([]productports.StockReservation, 0, len(items))
	for _, item := range items {
		product := byID[item.ProductID]
		if !product.HasStock(item.Quantity) {
			return nil, &InsufficientStockError{Product: product.Clone(), Requested: item.Quantity}
		}
		reservations = append(reservations, productports.StockReservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	if _, err := s.products.ReserveStock(ctx, reservations); err != nil {
		return nil, s.reservationError(err, byID)
	}

	lines := make([]domain.Line, 0, len(items))
	for _, item := range items {
		product := byID[item.ProductID]
		productID := product.ID
		lines = append(lines, domain.Line{ProductID: &productID, Price: product.Price, Quantity: item.Quantity})
	}
	order, err := domain.NewOrder(customer.ID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	order.Customer = &domain.CustomerRef{ID: customer.ID, Name: customer.Name, Email: customer.Email}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, persistence("create order", err)
	}
	if created.Customer == nil {
		created.Customer = order.Customer
	}
	return created, nil
}

// reservationError translates a failed conditional decrement. A shortage here
// means a concurrent order consumed the stock after the pre-check.
func (s *Service) reservationError(err error, byID map[string]*productdomain.Product) error {
	var shortage *productports.StockShortageError
	if errors.As(err, &shortage) {
		product := byID[shortage.ProductID].Clone()
		if product == nil {
			product = &productdomain.Product{ID: shortage.ProductID}
		}
		product.Quantity = shortage.Available
		return &InsufficientStockError{Product: product, Requested: shortage.Requested}
	}
	var gone *productports.MissingProductError
	if errors.As(err, &gone) {
		return &ProductsNotFoundError{IDs: []string{gone.ProductID}}
	}
	return persistence("reserve stock", err)
}

// replay returns the order a key already produced, or nil when the key is new.
func (s *Service) replay(ctx context.Context, key, hash string) (*domain.Order, error) {
	record, err := s.idempotency.Find(ctx, key)
	if err != nil {
		return nil, persistence("load idempotency key", err)
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestHash != hash {
		return nil, ErrIdempotencyConflict
	}
	order, err := s.orders.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, persistence("load replayed order", err)
	}
	return order, nil
}

func (s *Service) claim(ctx context.Context, key, hash, orderID string) error {
	stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, OrderID: orderID})
	if err != nil {
		return persistence("store idempotency key", err)
	}
	if stored == nil || stored.OrderID == orderID {
		return nil
	}
	if stored.RequestHash != hash {
		return ErrIdempotencyConflict
	}
	return errKeyClaimed
}

// GetOrder loads an order. The customer snapshot is filled in when the store
// does not return it and the customer still exists.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	id = identity.Canonical(id)
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return nil, persistence("load order", err)
	}
	if order.Customer == nil && order.CustomerID != nil {
		customer, err := s.customers.GetByID(ctx, *order.CustomerID)
		if err == nil {
			order.Customer = &domain.CustomerRef{ID: customer.ID, Name: customer.Name, Email: customer.Email}
		} else if !errors.Is(err, customerports.ErrNotFound) {
			return nil, persistence("load order customer", err)
		}
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
