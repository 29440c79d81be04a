package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// Port: pre-computed routes.
type RouteRepository interface {
	// Retrieve all routes. The first route is the fallback for orders without one.
	ListRoutes(ctx context.Context) ([]domain.Route, error)

	GetRoute(ctx context.Context, id string) (domain.Route, error)
	CreateRoute(ctx context.Context, r domain.Route) error
	UpdateRoute(ctx context.Context, r domain.Route) error
	// DeleteRoute fails with domain.ErrInUse while orders still reference the route.
	DeleteRoute(ctx context.Context, id string) error
}
