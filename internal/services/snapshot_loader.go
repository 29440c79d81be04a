package services

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"fmt"
)

// Snapshot is the point-in-time read of drivers, orders and routes for one run.
type Snapshot struct {
	Drivers []domain.Driver
	Orders  []domain.Order
	Routes  []domain.Route
}

// SnapshotLoader reads the three collections a run starts from.
type SnapshotLoader struct {
	Drivers ports.DriverRepository
	Orders  ports.OrderRepository
	Routes  ports.RouteRepository
}

// Load returns active drivers, pending orders and all routes.
// Any read failure is fatal for the run and wraps domain.ErrStorageUnavailable;
// a partial snapshot is never returned.
func (l *SnapshotLoader) Load(ctx context.Context) (_ *Snapshot, err error) {
	defer obs.Time(ctx, "simulation.LoadSnapshot")(&err)

	drivers, err := l.Drivers.ListActiveDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: list active drivers: %w", domain.ErrStorageUnavailable, err)
	}

	orders, err := l.Orders.ListPendingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: list pending orders: %w", domain.ErrStorageUnavailable, err)
	}

	routes, err := l.Routes.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: list routes: %w", domain.ErrStorageUnavailable, err)
	}

	return &Snapshot{Drivers: drivers, Orders: orders, Routes: routes}, nil
}
