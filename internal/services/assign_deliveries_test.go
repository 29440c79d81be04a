package services

import (
	"delivery-simulation-service/internal/domain"
	"testing"
)

func drivers(ids ...string) []domain.Driver {
	out := make([]domain.Driver, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Driver{ID: id, IsActive: true})
	}
	return out
}

func TestGreedySchedulerFatigueRule(t *testing.T) {
	long := &domain.Delivery{OrderID: "1", OrderValue: 1000, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 480}
	short := &domain.Delivery{OrderID: "2", OrderValue: 1000, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 60}
	workloads := NewWorkloads(drivers("d1"))

	GreedyScheduler{}.Assign([]*domain.Delivery{long, short}, workloads, 8)

	if long.AssignedDriverID != "d1" {
		t.Fatalf("480 minute delivery assigned to %q, want d1", long.AssignedDriverID)
	}
	if short.Assigned() {
		t.Fatalf("60 minute delivery should be unassigned once the cap is reached, got %q", short.AssignedDriverID)
	}
	if workloads[0].HoursUsed != 8 || workloads[0].DeliveryCount != 1 {
		t.Fatalf("workload = %+v, want 8h / 1", *workloads[0])
	}
}

func TestGreedySchedulerRejectsDeliveryJustOverCap(t *testing.T) {
	over := &domain.Delivery{OrderID: "1", OrderValue: 1000, Priority: domain.PriorityUrgent, ProjectedTimeMinutes: 480 + 5e-8}
	workloads := NewWorkloads(drivers("d1"))

	GreedyScheduler{}.Assign([]*domain.Delivery{over}, workloads, 8)

	if over.Assigned() {
		t.Fatalf("delivery of %v minutes assigned on an 8h cap", over.ProjectedTimeMinutes)
	}
	if workloads[0].HoursUsed > 8 {
		t.Fatalf("hours used = %v, exceeds cap", workloads[0].HoursUsed)
	}
}

func TestGreedySchedulerFillsCapFromSmallSteps(t *testing.T) {
	// 0.1h steps do not sum exactly in floating point; whatever is accepted
	// must still stay within the cap.
	var deliveries []*domain.Delivery
	for i := 0; i < 12; i++ {
		deliveries = append(deliveries, &domain.Delivery{OrderID: string(rune('a' + i)), OrderValue: 100, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 6})
	}
	workloads := NewWorkloads(drivers("d1"))

	GreedyScheduler{}.Assign(deliveries, workloads, 1)

	if workloads[0].HoursUsed > 1 {
		t.Fatalf("hours used = %v, exceeds cap", workloads[0].HoursUsed)
	}
	if n := workloads[0].DeliveryCount; n < 9 || n > 10 {
		t.Fatalf("delivery count = %d, want 9 or 10", n)
	}
}

func TestGreedySchedulerTieBreakBySnapshotOrder(t *testing.T) {
	d := &domain.Delivery{OrderID: "1", OrderValue: 500, Priority: domain.PriorityHigh, ProjectedTimeMinutes: 30}
	workloads := NewWorkloads(drivers("first", "second"))

	GreedyScheduler{}.Assign([]*domain.Delivery{d}, workloads, 8)

	if d.AssignedDriverID != "first" {
		t.Fatalf("assigned to %q, want first", d.AssignedDriverID)
	}
}

func TestGreedySchedulerBalancesByCount(t *testing.T) {
	ds := []*domain.Delivery{
		{OrderID: "a", OrderValue: 300, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 240},
		{OrderID: "b", OrderValue: 200, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 30},
		{OrderID: "c", OrderValue: 100, Priority: domain.PriorityNormal, ProjectedTimeMinutes: 30},
	}
	workloads := NewWorkloads(drivers("d1", "d2"))

	GreedyScheduler{}.Assign(ds, workloads, 8)

	// After a->d1 and b->d2 both have one delivery; c goes to d1 despite its
	// higher hours, since balancing is by count.
	want := map[string]string{"a": "d1", "b": "d2", "c": "d1"}
	for _, d := range ds {
		if d.AssignedDriverID != want[d.OrderID] {
			t.Errorf("delivery %s assigned to %q, want %q", d.OrderID, d.AssignedDriverID, want[d.OrderID])
		}
	}
}

func TestGreedySchedulerPriorityWinsCapacity(t *testing.T) {
	low := &domain.Delivery{OrderID: "low", OrderValue: 5000, Priority: domain.PriorityLow, ProjectedTimeMinutes: 300}
	urgent := &domain.Delivery{OrderID: "urgent", OrderValue: 50, Priority: domain.PriorityUrgent, ProjectedTimeMinutes: 300}

	GreedyScheduler{}.Assign([]*domain.Delivery{low, urgent}, NewWorkloads(drivers("d1")), 8)

	if !urgent.Assigned() || low.Assigned() {
		t.Fatalf("urgent=%q low=%q, want urgent placed first", urgent.AssignedDriverID, low.AssignedDriverID)
	}
}

func TestSortByPriority(t *testing.T) {
	ds := []*domain.Delivery{
		{OrderID: "normal-small", Priority: domain.PriorityNormal, OrderValue: 10},
		{OrderID: "low", Priority: domain.PriorityLow, OrderValue: 9000},
		{OrderID: "urgent", Priority: domain.PriorityUrgent, OrderValue: 1},
		{OrderID: "normal-big", Priority: domain.PriorityNormal, OrderValue: 900},
		{OrderID: "high", Priority: domain.PriorityHigh, OrderValue: 5},
		{OrderID: "normal-small-2", Priority: domain.PriorityNormal, OrderValue: 10},
	}

	SortByPriority(ds)

	want := []string{"urgent", "high", "normal-big", "normal-small", "normal-small-2", "low"}
	for i, d := range ds {
		if d.OrderID != want[i] {
			t.Fatalf("position %d = %s, want %s", i, d.OrderID, want[i])
		}
	}
}

func TestGreedySchedulerInvariants(t *testing.T) {
	src := NewSeededSource(99)
	m := &Materializer{Random: src}

	routes := []domain.Route{
		{ID: "r1", EstimatedTimeMinutes: 45, Distance: 15, FuelCostRate: 0.8},
		{ID: "r2", EstimatedTimeMinutes: 160, Distance: 40, FuelCostRate: 0.8},
		{ID: "r3", EstimatedTimeMinutes: 95, Distance: 28, FuelCostRate: 0.8},
	}
	priorities := []domain.Priority{domain.PriorityUrgent, domain.PriorityHigh, domain.PriorityNormal, domain.PriorityLow}
	orders := make([]domain.Order, 0, 40)
	for i := 0; i < 40; i++ {
		orders = append(orders, domain.Order{
			ID:         string(rune('A' + i)),
			OrderValue: float64(100 + 60*i),
			Priority:   priorities[i%len(priorities)],
			RouteID:    routes[i%len(routes)].ID,
		})
	}

	deliveries := m.MaterializeDeliveries(orders, routes)
	workloads := NewWorkloads(drivers("d1", "d2", "d3"))
	const maxHours = 6.0

	GreedyScheduler{}.Assign(deliveries, workloads, maxHours)

	assigned := 0
	for _, d := range deliveries {
		if d.Assigned() {
			assigned++
		}
	}
	total := 0
	for _, w := range workloads {
		total += w.DeliveryCount
		if w.HoursUsed > maxHours {
			t.Errorf("driver %s over cap: %v", w.Driver.ID, w.HoursUsed)
		}
	}
	if total != assigned {
		t.Fatalf("sum of delivery counts = %d, assigned deliveries = %d", total, assigned)
	}
	if assigned == len(deliveries) {
		t.Fatalf("expected some deliveries to exceed fleet capacity")
	}
}
