package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow, Priority("rush")}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Errorf("rank(%s)=%d should exceed rank(%s)=%d",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
}

func TestParsePriority(t *testing.T) {
	if p, ok := ParsePriority(" URGENT "); !ok || p != PriorityUrgent {
		t.Fatalf("ParsePriority(URGENT) = %q, %v", p, ok)
	}
	if _, ok := ParsePriority("whenever"); ok {
		t.Fatal("expected unknown priority to be rejected")
	}
}

func TestInsufficientDriversError(t *testing.T) {
	var err error = &InsufficientDriversError{Requested: 10, Available: 4}

	if !errors.Is(err, ErrInsufficientDrivers) {
		t.Fatal("expected errors.Is to match ErrInsufficientDrivers")
	}
	if got, want := err.Error(), "only 4 drivers available, but 10 requested"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestWorkloadAddDelivery(t *testing.T) {
	w := &DriverWorkload{Driver: Driver{ID: "d1"}}
	d := &Delivery{OrderID: "o1", ProjectedTimeMinutes: 90}

	w.AddDelivery(d)

	if w.HoursUsed != 1.5 || w.DeliveryCount != 1 {
		t.Fatalf("workload = %+v, want 1.5h / 1 delivery", *w)
	}
	if !d.Assigned() || d.AssignedDriverID != "d1" {
		t.Fatalf("delivery assigned to %q, want d1", d.AssignedDriverID)
	}
}

func TestParseOrderStatus(t *testing.T) {
	if st, ok := ParseOrderStatus(" Delivered "); !ok || st != OrderDelivered {
		t.Fatalf("ParseOrderStatus = %q, %v", st, ok)
	}
	if _, ok := ParseOrderStatus("lost"); ok {
		t.Fatalf("unknown status accepted")
	}
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("create order: %w", &NotFoundError{Kind: "route", ID: "r9"})

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(%v, ErrNotFound) = false", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "route r9 not found" {
		t.Fatalf("message = %v", err)
	}
}
