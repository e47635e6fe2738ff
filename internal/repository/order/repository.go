package order

import (
	"context"

	"elitecart/internal/domain"
)

// Repository is the durable store for order documents, keyed by order
// number. Create must be safe against concurrent redelivery: the uniqueness
// of order_number is enforced by the store itself, and a second create for
// the same order number returns domain.ErrOrderExists instead of writing a
// duplicate.
type Repository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) error
}
