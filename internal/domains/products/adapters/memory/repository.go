package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/memtx"
	"github.com/Apurer/go-gin-orders-api/internal/shared/identity"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter. Stock mutations made
// inside a memtx unit of work are reverted when the unit fails.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	// writes counts absolute stock writes per product. A rolled back
	// reservation only releases its units when no absolute write followed it.
	writes map[string]uint64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		products: map[string]*domain.Product{},
		writes:   map[string]uint64{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if strings.EqualFold(existing.Name, clone.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	clone.Metadata.Stamp(r.now().UTC())
	r.products[clone.ID] = clone
	id := clone.ID
	memtx.OnRollback(ctx, func() {
		r.mu.Lock()
		delete(r.products, id)
		r.mu.Unlock()
	})
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if strings.EqualFold(product.Name, name) {
			return product.Clone(), nil
		}
	}
	return nil, nil
}

func (r *Repository) FindManyByID(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.products[id]; ok {
			out = append(out, product.Clone())
		}
	}
	return out, nil
}

func (r *Repository) ApplyQuantities(ctx context.Context, adjustments []ports.QuantityAdjustment) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, adj := range adjustments {
		if _, ok := r.products[adj.ProductID]; !ok {
			return nil, &ports.MissingProductError{ProductID: adj.ProductID}
		}
		if adj.Quantity < 0 {
			return nil, domain.ErrNegativeQuantity
		}
	}
	now := r.now().UTC()
	out := make([]*domain.Product, 0, len(adjustments))
	for _, adj := range adjustments {
		r.writes[adj.ProductID]++
		out = append(out, r.setQuantity(ctx, adj.ProductID, adj.Quantity, now))
	}
	return out, nil
}

// ReserveStock checks and decrements under a single write lock, so concurrent
// reservations can never drive a quantity below zero.
func (r *Repository) ReserveStock(ctx context.Context, reservations []ports.StockReservation) ([]*domain.Product, error) {
	merged := mergeReservations(reservations)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range merged {
		product, ok := r.products[res.ProductID]
		if !ok {
			return nil, &ports.MissingProductError{ProductID: res.ProductID}
		}
		if !product.HasStock(res.Quantity) {
			return nil, &ports.StockShortageError{
				ProductID: res.ProductID,
				Requested: res.Quantity,
				Available: product.Quantity,
			}
		}
	}
	now := r.now().UTC()
	out := make([]*domain.Product, 0, len(merged))
	for _, res := range merged {
		out = append(out, r.decrement(ctx, res.ProductID, res.Quantity, now))
	}
	return out, nil
}

// decrement must be called with the write lock held. Its undo gives the
// reserved units back rather than restoring an earlier absolute quantity, so
// reservations committed by other units of work in the meantime survive.
func (r *Repository) decrement(ctx context.Context, id string, units int, now time.Time) *domain.Product {
	product := r.products[id]
	previous := product.Metadata
	product.Quantity -= units
	product.Metadata.Touch(now)
	touched := product.Metadata.UpdatedAt
	written := r.writes[id]
	memtx.OnRollback(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		current, ok := r.products[id]
		if !ok || r.writes[id] != written {
			return
		}
		current.Quantity += units
		if current.Metadata.UpdatedAt.Equal(touched) {
			current.Metadata = previous
		}
	})
	return product.Clone()
}

// setQuantity must be called with the write lock held. It backs absolute
// writes, whose undo restores the earlier value.
func (r *Repository) setQuantity(ctx context.Context, id string, quantity int, now time.Time) *domain.Product {
	product := r.products[id]
	previous := product.Clone()
	product.Quantity = quantity
	product.Metadata.Touch(now)
	memtx.OnRollback(ctx, func() {
		r.mu.Lock()
		if current, ok := r.products[id]; ok {
			current.Quantity = previous.Quantity
			current.Metadata = previous.Metadata
		}
		r.mu.Unlock()
	})
	return product.Clone()
}

// mergeReservations sums repeated product ids and orders the result by id.
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
