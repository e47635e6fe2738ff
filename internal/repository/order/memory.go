package order

import (
	"context"
	"sort"
	"sync"

	"elitecart/internal/domain"
)

// Memory is an in-process Repository for tests and dependency-free local
// runs. The mutex gives it the same create-once semantics the Postgres
// uniqueness constraint provides.
type Memory struct {
	mu sync.RWMutex
	m  map[string]domain.Order
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]domain.Order)}
}

func (r *Memory) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[o.OrderNumber]; ok {
		return domain.ErrOrderExists
	}
	r.m[o.OrderNumber] = *o
	return nil
}

func (r *Memory) GetByOrderNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[orderNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *Memory) List(_ context.Context, limit, offset int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Order, 0, len(r.m))
	for _, o := range r.m {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].OrderDate.After(all[j].OrderDate)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *Memory) UpdateStatus(_ context.Context, orderNumber string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.m[orderNumber]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.m[orderNumber] = o
	return nil
}

// Len reports the number of stored orders. Test helper.
func (r *Memory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
