package services

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Driver record bounds. A zero cap on create or update means the default.
const (
	DefaultDriverHours = 8
	MinDriverHours     = 1
	MaxDriverHours     = 24
)

// FleetService manages the drivers, routes and orders a simulation reads.
type FleetService struct {
	Drivers ports.DriverRepository
	Orders  ports.OrderRepository
	Routes  ports.RouteRepository

	NewID func() string
}

func NewFleetService(drivers ports.DriverRepository, orders ports.OrderRepository, routes ports.RouteRepository) *FleetService {
	return &FleetService{Drivers: drivers, Orders: orders, Routes: routes, NewID: uuid.NewString}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func (s *FleetService) id(given string) string {
	if id := strings.TrimSpace(given); id != "" {
		return id
	}
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func (s *FleetService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.Drivers.ListDrivers(ctx)
}

func (s *FleetService) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	return s.Drivers.GetDriver(ctx, id)
}

func normalizeDriver(d domain.Driver) (domain.Driver, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, invalid("name is required")
	}
	if d.MaxHoursPerDay == 0 {
		d.MaxHoursPerDay = DefaultDriverHours
	}
	if d.MaxHoursPerDay < MinDriverHours || d.MaxHoursPerDay > MaxDriverHours {
		return d, invalid("max_hours_per_day must be between %d and %d", MinDriverHours, MaxDriverHours)
	}
	return d, nil
}

// CreateDriver stores a new driver, generating an id when none is given.
func (s *FleetService) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	d, err := normalizeDriver(d)
	if err != nil {
		return domain.Driver{}, err
	}
	d.ID = s.id(d.ID)

	if err := s.Drivers.CreateDriver(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("create driver: %w", err)
	}
	return d, nil
}

// UpdateDriver replaces the stored driver with the same id.
func (s *FleetService) UpdateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	d, err := normalizeDriver(d)
	if err != nil {
		return domain.Driver{}, err
	}
	if err := s.Drivers.UpdateDriver(ctx, d); err != nil {
		return domain.Driver{}, fmt.Errorf("update driver: %w", err)
	}
	return d, nil
}

func (s *FleetService) DeleteDriver(ctx context.Context, id string) error {
	if err := s.Drivers.DeleteDriver(ctx, id); err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}

func (s *FleetService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.Routes.ListRoutes(ctx)
}

func (s *FleetService) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	return s.Routes.GetRoute(ctx, id)
}

func normalizeRoute(r domain.Route) (domain.Route, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.StartLocation = strings.TrimSpace(r.StartLocation)
	r.EndLocation = strings.TrimSpace(r.EndLocation)

	switch {
	case r.Name == "":
		return r, invalid("name is required")
	case r.StartLocation == "" || r.EndLocation == "":
		return r, invalid("start_location and end_location are required")
	case r.EstimatedTimeMinutes <= 0:
		return r, invalid("estimated_time_minutes must be positive")
	case r.Distance <= 0:
		return r, invalid("distance must be positive")
	case r.FuelCostRate < 0:
		return r, invalid("fuel_cost_rate must not be negative")
	}
	return r, nil
}

func (s *FleetService) CreateRoute(ctx context.Context, r domain.Route) (domain.Route, error) {
	r, err := normalizeRoute(r)
	if err != nil {
		return domain.Route{}, err
	}
	r.ID = s.id(r.ID)

	if err := s.Routes.CreateRoute(ctx, r); err != nil {
		return domain.Route{}, fmt.Errorf("create route: %w", err)
	}
	return r, nil
}

func (s *FleetService) UpdateRoute(ctx context.Context, r domain.Route) (domain.Route, error) {
	r, err := normalizeRoute(r)
	if err != nil {
		return domain.Route{}, err
	}
	if err := s.Routes.UpdateRoute(ctx, r); err != nil {
		return domain.Route{}, fmt.Errorf("update route: %w", err)
	}
	return r, nil
}

// DeleteRoute refuses while any order still points at the route.
func (s *FleetService) DeleteRoute(ctx context.Context, id string) error {
	if err := s.Routes.DeleteRoute(ctx, id); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return nil
}

func (s *FleetService) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]domain.Order, error) {
	return s.Orders.ListOrders(ctx, filter)
}

func (s *FleetService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.Orders.GetOrder(ctx, id)
}

// normalizeOrder validates an order and checks that its route exists.
// Empty priority and status default to normal and pending.
func (s *FleetService) normalizeOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	if !(o.OrderValue > 0) {
		return o, invalid("order_value must be positive")
	}

	if o.Priority == "" {
		o.Priority = domain.PriorityNormal
	}
	p, ok := domain.ParsePriority(string(o.Priority))
	if !ok {
		return o, invalid("priority must be one of urgent, high, normal, low")
	}
	o.Priority = p

	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	st, ok := domain.ParseOrderStatus(string(o.Status))
	if !ok {
		return o, invalid("status must be one of pending, assigned, delivered, cancelled")
	}
	o.Status = st

	o.RouteID = strings.TrimSpace(o.RouteID)
	if o.RouteID != "" {
		if _, err := s.Routes.GetRoute(ctx, o.RouteID); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (s *FleetService) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	o, err := s.normalizeOrder(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = s.id(o.ID)

	if err := s.Orders.CreateOrder(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (s *FleetService) UpdateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	o, err := s.normalizeOrder(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.Orders.UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// DeleteOrder refuses to drop an order that is currently assigned to a driver.
func (s *FleetService) DeleteOrder(ctx context.Context, id string) error {
	o, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if o.Status == domain.OrderAssigned {
		return fmt.Errorf("delete order id=%s: %w: order is in progress", id, domain.ErrInUse)
	}
	if err := s.Orders.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
