package repositories

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreFiltersSnapshot(t *testing.T) {
	store := NewMemoryStore(
		[]domain.Driver{
			{ID: "d1", IsActive: true},
			{ID: "d2", IsActive: false},
			{ID: "d3", IsActive: true},
		},
		[]domain.Order{
			{ID: "o1", Status: domain.OrderPending, Priority: domain.PriorityHigh},
			{ID: "o2", Status: domain.OrderDelivered, Priority: domain.PriorityHigh},
			{ID: "o3", Status: domain.OrderPending, Priority: domain.PriorityLow},
		},
		nil,
	)
	ctx := context.Background()

	drivers, err := store.ListActiveDrivers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 2 || drivers[0].ID != "d1" || drivers[1].ID != "d3" {
		t.Fatalf("active drivers = %+v, want d1, d3", drivers)
	}

	orders, err := store.ListPendingOrders(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o1" || orders[1].ID != "o3" {
		t.Fatalf("pending orders = %+v, want o1, o3", orders)
	}

	all, _ := store.ListOrders(ctx, ports.OrderFilter{})
	if len(all) != 3 {
		t.Fatalf("all orders = %d, want 3", len(all))
	}

	high, _ := store.ListOrders(ctx, ports.OrderFilter{Priority: domain.PriorityHigh})
	if len(high) != 2 {
		t.Fatalf("high priority orders = %d, want 2", len(high))
	}

	pendingHigh, _ := store.ListOrders(ctx, ports.OrderFilter{Status: domain.OrderPending, Priority: domain.PriorityHigh})
	if len(pendingHigh) != 1 || pendingHigh[0].ID != "o1" {
		t.Fatalf("pending high orders = %+v, want o1", pendingHigh)
	}
}

func TestMemoryStoreResultsNewestFirst(t *testing.T) {
	store := &MemoryStore{}
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, domain.SimulationRecord{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	got, err := store.ListResults(ctx, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("page = %+v, want c, b", got)
	}

	got, _ = store.ListResults(ctx, 2, 2)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("second page = %+v, want a", got)
	}

	got, _ = store.ListResults(ctx, 2, 5)
	if len(got) != 0 {
		t.Fatalf("past end = %+v, want empty", got)
	}
}

func TestMemoryStoreInjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	store := &MemoryStore{RoutesErr: boom, SaveErr: boom}

	if _, err := store.ListRoutes(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("ListRoutes err = %v, want boom", err)
	}
	if err := store.Save(context.Background(), domain.SimulationRecord{}); !errors.Is(err, boom) {
		t.Fatalf("Save err = %v, want boom", err)
	}
}

func TestMemoryStoreDriverWrites(t *testing.T) {
	store := NewMemoryStore(nil, nil, nil)
	ctx := context.Background()

	if err := store.CreateDriver(ctx, domain.Driver{ID: "d1", Name: "Ana", MaxHoursPerDay: 8}); err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	if err := store.CreateDriver(ctx, domain.Driver{ID: "d1"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate err = %v, want ErrConflict", err)
	}

	if err := store.UpdateDriver(ctx, domain.Driver{ID: "d1", Name: "Ana B", MaxHoursPerDay: 6}); err != nil {
		t.Fatalf("UpdateDriver: %v", err)
	}
	got, err := store.GetDriver(ctx, "d1")
	if err != nil || got.Name != "Ana B" || got.MaxHoursPerDay != 6 {
		t.Fatalf("GetDriver = %+v, %v", got, err)
	}

	if err := store.UpdateDriver(ctx, domain.Driver{ID: "ghost"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteDriver(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDriver: %v", err)
	}
	if _, err := store.GetDriver(ctx, "d1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRouteDeleteBlockedByOrders(t *testing.T) {
	store := NewMemoryStore(nil,
		[]domain.Order{{ID: "o1", RouteID: "r1"}},
		[]domain.Route{{ID: "r1"}, {ID: "r2"}},
	)
	ctx := context.Background()

	if err := store.DeleteRoute(ctx, "r1"); !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("delete referenced err = %v, want ErrInUse", err)
	}
	if err := store.DeleteRoute(ctx, "r2"); err != nil {
		t.Fatalf("DeleteRoute: %v", err)
	}
	if err := store.DeleteRoute(ctx, "r2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete twice err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreOrderWrites(t *testing.T) {
	store := NewMemoryStore(nil, nil, nil)
	ctx := context.Background()

	o := domain.Order{ID: "o1", OrderValue: 10, Priority: domain.PriorityLow, Status: domain.OrderPending}
	if err := store.CreateOrder(ctx, o); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if err := store.CreateOrder(ctx, o); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate err = %v, want ErrConflict", err)
	}

	o.Status = domain.OrderDelivered
	if err := store.UpdateOrder(ctx, o); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if got, _ := store.GetOrder(ctx, "o1"); got.Status != domain.OrderDelivered {
		t.Fatalf("status = %s, want delivered", got.Status)
	}
	if err := store.DeleteOrder(ctx, "o1"); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if err := store.DeleteOrder(ctx, "o1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete twice err = %v, want ErrNotFound", err)
	}
}
