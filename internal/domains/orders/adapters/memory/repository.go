package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/memtx"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Like the relational
// store it keeps only the customer id; the snapshot is returned from Create alone.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[string]*domain.Order{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if len(order.Lines) == 0 {
		return nil, domain.ErrNoItems
	}
	clone := order.Clone()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := r.now().UTC()
	clone.Metadata.Stamp(now)
	for i := range clone.Lines {
		if clone.Lines[i].ID == "" {
			clone.Lines[i].ID = uuid.NewString()
		}
	}

	stored := clone.Clone()
	stored.Customer = nil
	r.mu.Lock()
	r.orders[stored.ID] = stored
	r.mu.Unlock()

	id := clone.ID
	memtx.OnRollback(ctx, func() {
		r.mu.Lock()
		delete(r.orders, id)
		r.mu.Unlock()
	})
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

// Count reports how many orders are stored.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
