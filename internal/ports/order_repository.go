package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// OrderFilter narrows ListOrders. Zero fields match everything.
type OrderFilter struct {
	Status   domain.OrderStatus
	Priority domain.Priority
}

// Port: customer orders.
type OrderRepository interface {
	// Retrieve orders in the pending lifecycle state.
	ListPendingOrders(ctx context.Context) ([]domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)

	GetOrder(ctx context.Context, id string) (domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) error
	UpdateOrder(ctx context.Context, o domain.Order) error
	DeleteOrder(ctx context.Context, id string) error
}
