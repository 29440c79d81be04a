package repositories

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore is an in-process implementation of every storage port.
// The *Err fields force the matching call to fail.
type MemoryStore struct {
	mu sync.Mutex

	Drivers []domain.Driver
	Orders  []domain.Order
	Routes  []domain.Route
	Records []domain.SimulationRecord

	DriversErr error
	OrdersErr  error
	RoutesErr  error
	SaveErr    error
}

func NewMemoryStore(drivers []domain.Driver, orders []domain.Order, routes []domain.Route) *MemoryStore {
	return &MemoryStore{Drivers: drivers, Orders: orders, Routes: routes}
}

func (m *MemoryStore) ListActiveDrivers(ctx context.Context) ([]domain.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return nil, m.DriversErr
	}

	out := make([]domain.Driver, 0, len(m.Drivers))
	for _, d := range m.Drivers {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemoryStore) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return nil, m.DriversErr
	}
	return slices.Clone(m.Drivers), nil
}

func (m *MemoryStore) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	return m.ListOrders(ctx, ports.OrderFilter{Status: domain.OrderPending})
}

func (m *MemoryStore) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OrdersErr != nil {
		return nil, m.OrdersErr
	}

	out := make([]domain.Order, 0, len(m.Orders))
	for _, o := range m.Orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && o.Priority != filter.Priority {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *MemoryStore) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RoutesErr != nil {
		return nil, m.RoutesErr
	}
	return slices.Clone(m.Routes), nil
}

func (m *MemoryStore) Save(ctx context.Context, record domain.SimulationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Records = append(m.Records, record)
	return nil
}

// ListResults returns saved records newest first.
func (m *MemoryStore) ListResults(ctx context.Context, limit, offset int) ([]domain.SimulationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := slices.Clone(m.Records)
	slices.SortStableFunc(sorted, func(a, b domain.SimulationRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if offset >= len(sorted) {
		return []domain.SimulationRecord{}, nil
	}
	end := len(sorted)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return sorted[offset:end], nil
}

func (m *MemoryStore) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return domain.Driver{}, m.DriversErr
	}
	i := slices.IndexFunc(m.Drivers, func(d domain.Driver) bool { return d.ID == id })
	if i < 0 {
		return domain.Driver{}, &domain.NotFoundError{Kind: "driver", ID: id}
	}
	return m.Drivers[i], nil
}

func (m *MemoryStore) CreateDriver(ctx context.Context, d domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return m.DriversErr
	}
	if slices.IndexFunc(m.Drivers, func(x domain.Driver) bool { return x.ID == d.ID }) >= 0 {
		return fmt.Errorf("%w: driver %s", domain.ErrConflict, d.ID)
	}
	m.Drivers = append(m.Drivers, d)
	return nil
}

func (m *MemoryStore) UpdateDriver(ctx context.Context, d domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return m.DriversErr
	}
	i := slices.IndexFunc(m.Drivers, func(x domain.Driver) bool { return x.ID == d.ID })
	if i < 0 {
		return &domain.NotFoundError{Kind: "driver", ID: d.ID}
	}
	m.Drivers[i] = d
	return nil
}

func (m *MemoryStore) DeleteDriver(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DriversErr != nil {
		return m.DriversErr
	}
	i := slices.IndexFunc(m.Drivers, func(d domain.Driver) bool { return d.ID == id })
	if i < 0 {
		return &domain.NotFoundError{Kind: "driver", ID: id}
	}
	m.Drivers = slices.Delete(m.Drivers, i, i+1)
	return nil
}

func (m *MemoryStore) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OrdersErr != nil {
		return domain.Order{}, m.OrdersErr
	}
	i := slices.IndexFunc(m.Orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return domain.Order{}, &domain.NotFoundError{Kind: "order", ID: id}
	}
	return m.Orders[i], nil
}

func (m *MemoryStore) CreateOrder(ctx context.Context, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OrdersErr != nil {
		return m.OrdersErr
	}
	if slices.IndexFunc(m.Orders, func(x domain.Order) bool { return x.ID == o.ID }) >= 0 {
		return fmt.Errorf("%w: order %s", domain.ErrConflict, o.ID)
	}
	m.Orders = append(m.Orders, o)
	return nil
}

func (m *MemoryStore) UpdateOrder(ctx context.Context, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OrdersErr != nil {
		return m.OrdersErr
	}
	i := slices.IndexFunc(m.Orders, func(x domain.Order) bool { return x.ID == o.ID })
	if i < 0 {
		return &domain.NotFoundError{Kind: "order", ID: o.ID}
	}
	m.Orders[i] = o
	return nil
}

func (m *MemoryStore) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OrdersErr != nil {
		return m.OrdersErr
	}
	i := slices.IndexFunc(m.Orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return &domain.NotFoundError{Kind: "order", ID: id}
	}
	m.Orders = slices.Delete(m.Orders, i, i+1)
	return nil
}

func (m *MemoryStore) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RoutesErr != nil {
		return domain.Route{}, m.RoutesErr
	}
	i := slices.IndexFunc(m.Routes, func(r domain.Route) bool { return r.ID == id })
	if i < 0 {
		return domain.Route{}, &domain.NotFoundError{Kind: "route", ID: id}
	}
	return m.Routes[i], nil
}

func (m *MemoryStore) CreateRoute(ctx context.Context, r domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RoutesErr != nil {
		return m.RoutesErr
	}
	if slices.IndexFunc(m.Routes, func(x domain.Route) bool { return x.ID == r.ID }) >= 0 {
		return fmt.Errorf("%w: route %s", domain.ErrConflict, r.ID)
	}
	m.Routes = append(m.Routes, r)
	return nil
}

func (m *MemoryStore) UpdateRoute(ctx context.Context, r domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RoutesErr != nil {
		return m.RoutesErr
	}
	i := slices.IndexFunc(m.Routes, func(x domain.Route) bool { return x.ID == r.ID })
	if i < 0 {
		return &domain.NotFoundError{Kind: "route", ID: r.ID}
	}
	m.Routes[i] = r
	return nil
}

func (m *MemoryStore) DeleteRoute(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RoutesErr != nil {
		return m.RoutesErr
	}
	i := slices.IndexFunc(m.Routes, func(r domain.Route) bool { return r.ID == id })
	if i < 0 {
		return &domain.NotFoundError{Kind: "route", ID: id}
	}
	if slices.IndexFunc(m.Orders, func(o domain.Order) bool { return o.RouteID == id }) >= 0 {
		return fmt.Errorf("delete route id=%s: %w: orders still reference it", id, domain.ErrInUse)
	}
	m.Routes = slices.Delete(m.Routes, i, i+1)
	return nil
}
