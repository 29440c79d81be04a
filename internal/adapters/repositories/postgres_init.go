package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		max_hours_per_day DOUBLE PRECISION NOT NULL DEFAULT 8 CHECK (max_hours_per_day > 0),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_location TEXT NOT NULL DEFAULT '',
		end_location TEXT NOT NULL DEFAULT '',
		estimated_time_minutes DOUBLE PRECISION NOT NULL CHECK (estimated_time_minutes >= 0),
		distance DOUBLE PRECISION NOT NULL CHECK (distance >= 0),
		fuel_cost_rate DOUBLE PRECISION NOT NULL CHECK (fuel_cost_rate >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		order_value DOUBLE PRECISION NOT NULL CHECK (order_value > 0),
		priority TEXT NOT NULL DEFAULT 'normal',
		status TEXT NOT NULL DEFAULT 'pending',
		route_id TEXT REFERENCES routes(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS simulation_results (
		id TEXT PRIMARY KEY,
		driver_count INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		max_hours_per_day DOUBLE PRECISION NOT NULL,
		total_profit DOUBLE PRECISION NOT NULL,
		efficiency_score DOUBLE PRECISION NOT NULL,
		on_time_deliveries INTEGER NOT NULL,
		late_deliveries INTEGER NOT NULL,
		assigned_deliveries INTEGER NOT NULL,
		unassigned_deliveries INTEGER NOT NULL,
		total_fuel_cost DOUBLE PRECISION NOT NULL,
		average_delivery_time DOUBLE PRECISION NOT NULL,
		driver_utilization JSONB NOT NULL,
		hourly_performance JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_simulation_results_created_at
	ON simulation_results(created_at DESC);
	`

	statements := []string{
		createDriversQuery,
		createRoutesQuery,
		createOrdersQuery,
		createResultsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DriverSeed struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MaxHoursPerDay float64 `json:"max_hours_per_day"`
	IsActive       bool    `json:"is_active"`
}

type RouteSeed struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	StartLocation        string  `json:"start_location"`
	EndLocation          string  `json:"end_location"`
	EstimatedTimeMinutes float64 `json:"estimated_time_minutes"`
	Distance             float64 `json:"distance"`
	FuelCostRate         float64 `json:"fuel_cost_rate"`
}

type OrderSeed struct {
	ID         string  `json:"id"`
	OrderValue float64 `json:"order_value"`
	Priority   string  `json:"priority"`
	Status     string  `json:"status"`
	RouteID    string  `json:"route_id"`
}

type FleetSeed struct {
	Drivers []DriverSeed `json:"drivers"`
	Routes  []RouteSeed  `json:"routes"`
	Orders  []OrderSeed  `json:"orders"`
}

// ParseFleetSeed decodes and validates seed data.
func ParseFleetSeed(b []byte) (*FleetSeed, error) {
	var seed FleetSeed
	if err := json.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i := range seed.Drivers {
		d := &seed.Drivers[i]
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			return nil, fmt.Errorf("seed fleet: driver at index %d: id cannot be empty", i+1)
		}
		if d.MaxHoursPerDay == 0 {
			d.MaxHoursPerDay = 8
		}
		if d.MaxHoursPerDay < 0 {
			return nil, fmt.Errorf("seed fleet: driver %q: max_hours_per_day must be positive", d.ID)
		}
	}

	routeIDs := make(map[string]struct{}, len(seed.Routes))
	for i := range seed.Routes {
		r := &seed.Routes[i]
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("seed fleet: route at index %d: id cannot be empty", i+1)
		}
		if r.EstimatedTimeMinutes < 0 || r.Distance < 0 || r.FuelCostRate < 0 {
			return nil, fmt.Errorf("seed fleet: route %q: estimates must be non-negative", r.ID)
		}
		routeIDs[r.ID] = struct{}{}
	}

	for i := range seed.Orders {
		o := &seed.Orders[i]
		o.ID = strings.TrimSpace(o.ID)
		if o.ID == "" {
			return nil, fmt.Errorf("seed fleet: order at index %d: id cannot be empty", i+1)
		}
		if o.OrderValue <= 0 {
			return nil, fmt.Errorf("seed fleet: order %q: order_value must be positive", o.ID)
		}
		if o.Priority == "" {
			o.Priority = string(domain.PriorityNormal)
		}
		priority, ok := domain.ParsePriority(o.Priority)
		if !ok {
			return nil, fmt.Errorf("seed fleet: order %q: unknown priority %q", o.ID, o.Priority)
		}
		o.Priority = string(priority)
		if o.Status == "" {
			o.Status = string(domain.OrderPending)
		}
		status, ok := domain.ParseOrderStatus(o.Status)
		if !ok {
			return nil, fmt.Errorf("seed fleet: order %q: unknown status %q", o.ID, o.Status)
		}
		o.Status = string(status)
		if o.RouteID != "" {
			if _, ok := routeIDs[o.RouteID]; !ok {
				return nil, fmt.Errorf("seed fleet: order %q: unknown route %q", o.ID, o.RouteID)
			}
		}
	}

	return &seed, nil
}

// Populate the database with fleet data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	seed, err := ParseFleetSeed(bytes)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Sequential created_at values keep the seed file order as snapshot order.
	for i, d := range seed.Drivers {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO drivers (id, name, max_hours_per_day, is_active, created_at)
		VALUES ($1, $2, $3, $4, now() + make_interval(secs => $5))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			max_hours_per_day = EXCLUDED.max_hours_per_day,
			is_active = EXCLUDED.is_active;
		`, d.ID, d.Name, d.MaxHoursPerDay, d.IsActive, float64(i)); err != nil {
			return fmt.Errorf("seed fleet: insert driver id=%s: %w", d.ID, err)
		}
	}

	for i, r := range seed.Routes {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO routes (id, name, start_location, end_location, estimated_time_minutes, distance, fuel_cost_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now() + make_interval(secs => $8))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			start_location = EXCLUDED.start_location,
			end_location = EXCLUDED.end_location,
			estimated_time_minutes = EXCLUDED.estimated_time_minutes,
			distance = EXCLUDED.distance,
			fuel_cost_rate = EXCLUDED.fuel_cost_rate;
		`, r.ID, r.Name, r.StartLocation, r.EndLocation, r.EstimatedTimeMinutes, r.Distance, r.FuelCostRate, float64(i)); err != nil {
			return fmt.Errorf("seed fleet: insert route id=%s: %w", r.ID, err)
		}
	}

	for i, o := range seed.Orders {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_value, priority, status, route_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), now() + make_interval(secs => $6))
		ON CONFLICT (id) DO UPDATE
		SET order_value = EXCLUDED.order_value,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			route_id = EXCLUDED.route_id;
		`, o.ID, o.OrderValue, o.Priority, o.Status, o.RouteID, float64(i)); err != nil {
			return fmt.Errorf("seed fleet: insert order id=%s: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
