package repositories

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/db"
	"delivery-simulation-service/internal/ports"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestPostgresRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(ctx, conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(t.TempDir(), "fleet.json")
	seed := `{
		"drivers": [
			{"id": "it-d1", "name": "First", "max_hours_per_day": 8, "is_active": true},
			{"id": "it-d2", "name": "Second", "max_hours_per_day": 8, "is_active": false}
		],
		"routes": [{"id": "it-r1", "name": "Loop", "estimated_time_minutes": 60, "distance": 20, "fuel_cost_rate": 0.5}],
		"orders": [{"id": "it-o1", "order_value": 900, "priority": "high", "route_id": "it-r1"}]
	}`
	if err := os.WriteFile(seedPath, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(ctx, conn, seedPath); err != nil {
		t.Fatalf("seed: %v", err)
	}

	drivers, err := NewPostgresDriverRepository(conn).ListActiveDrivers(ctx)
	if err != nil {
		t.Fatalf("list active drivers: %v", err)
	}
	for _, d := range drivers {
		if d.ID == "it-d2" {
			t.Fatalf("inactive driver returned: %+v", d)
		}
	}

	orders, err := NewPostgresOrderRepository(conn).ListPendingOrders(ctx)
	if err != nil {
		t.Fatalf("list pending orders: %v", err)
	}
	found := false
	for _, o := range orders {
		if o.ID == "it-o1" {
			found = o.RouteID == "it-r1" && o.Priority == domain.PriorityHigh
		}
	}
	if !found {
		t.Fatalf("seeded order missing or wrong: %+v", orders)
	}

	store := NewPostgresResultStore(conn)
	rec := domain.SimulationRecord{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC().Add(time.Hour),
		Parameters: domain.SimulationParameters{DriverCount: 1, StartTime: domain.ClockTime{Hour: 9}, MaxHoursPerDay: 8},
		Result: domain.SimulationResult{
			TotalProfit:       135,
			EfficiencyScore:   97.5,
			OnTimeCount:       1,
			DriverUtilization: []domain.DriverUtilization{{DriverID: "it-d1", Driver: "First", Utilization: 13}},
		},
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.ListResults(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(got) != 1 || got[0].ID != rec.ID {
		t.Fatalf("newest record = %+v, want %s", got, rec.ID)
	}
	if got[0].Parameters.StartTime.String() != "09:00" {
		t.Errorf("start time = %s, want 09:00", got[0].Parameters.StartTime)
	}
	if len(got[0].Result.DriverUtilization) != 1 || got[0].Result.HourlyPerformance == nil {
		t.Errorf("json columns not restored: %+v", got[0].Result)
	}
}

func TestPostgresRecordWrites(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(ctx, conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	suffix := uuid.NewString()[:8]
	routes := NewPostgresRouteRepository(conn)
	orders := NewPostgresOrderRepository(conn)
	drivers := NewPostgresDriverRepository(conn)

	route := domain.Route{ID: "wr-r-" + suffix, Name: "Loop", StartLocation: "A", EndLocation: "B", EstimatedTimeMinutes: 30, Distance: 9, FuelCostRate: 0.4}
	if err := routes.CreateRoute(ctx, route); err != nil {
		t.Fatalf("create route: %v", err)
	}
	if err := routes.CreateRoute(ctx, route); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate route err = %v, want ErrConflict", err)
	}

	order := domain.Order{ID: "wr-o-" + suffix, OrderValue: 50, Priority: domain.PriorityUrgent, Status: domain.OrderPending, RouteID: route.ID}
	if err := orders.CreateOrder(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := routes.DeleteRoute(ctx, route.ID); !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("delete referenced route err = %v, want ErrInUse", err)
	}

	order.Status = domain.OrderCancelled
	if err := orders.UpdateOrder(ctx, order); err != nil {
		t.Fatalf("update order: %v", err)
	}
	urgent, err := orders.ListOrders(ctx, ports.OrderFilter{Status: domain.OrderCancelled, Priority: domain.PriorityUrgent})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	found := false
	for _, o := range urgent {
		found = found || o.ID == order.ID
	}
	if !found {
		t.Fatalf("filtered orders missing %s", order.ID)
	}

	if err := orders.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if err := routes.DeleteRoute(ctx, route.ID); err != nil {
		t.Fatalf("delete route: %v", err)
	}
	if _, err := routes.GetRoute(ctx, route.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted route err = %v, want ErrNotFound", err)
	}

	driver := domain.Driver{ID: "wr-d-" + suffix, Name: "Temp", MaxHoursPerDay: 8, IsActive: true}
	if err := drivers.CreateDriver(ctx, driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	if err := drivers.UpdateDriver(ctx, domain.Driver{ID: "missing-" + suffix, Name: "x", MaxHoursPerDay: 8}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing driver err = %v, want ErrNotFound", err)
	}
	if err := drivers.DeleteDriver(ctx, driver.ID); err != nil {
		t.Fatalf("delete driver: %v", err)
	}
}
