package services

import (
	"cmp"
	"delivery-simulation-service/internal/domain"
	"slices"
)

// Scheduler places deliveries onto driver workloads.
// It mutates Delivery.AssignedDriverID and the workloads in place.
type Scheduler interface {
	Assign(deliveries []*domain.Delivery, workloads []*domain.DriverWorkload, maxHoursPerDay float64)
}

// GreedyScheduler is a single greedy pass, not a solver.
//
// Deliveries are taken by priority then order value (both descending). Each
// goes to the eligible driver with the fewest deliveries so far, where
// eligible means the delivery would not push the driver past maxHoursPerDay.
// Ties go to the driver earliest in the workload slice. Nothing is reassigned
// once placed; deliveries no driver can take stay unassigned.
type GreedyScheduler struct{}

func (GreedyScheduler) Assign(deliveries []*domain.Delivery, workloads []*domain.DriverWorkload, maxHoursPerDay float64) {
	ordered := slices.Clone(deliveries)
	SortByPriority(ordered)

	for _, d := range ordered {
		d.AssignedDriverID = ""

		best := pickDriver(workloads, d.ProjectedTimeMinutes/60, maxHoursPerDay)
		if best == nil {
			continue
		}
		best.AddDelivery(d)
	}
}

// SortByPriority orders deliveries urgent first, then by order value descending.
// The sort is stable so equal deliveries keep snapshot order.
func SortByPriority(deliveries []*domain.Delivery) {
	slices.SortStableFunc(deliveries, func(a, b *domain.Delivery) int {
		if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(b.OrderValue, a.OrderValue)
	})
}

func pickDriver(workloads []*domain.DriverWorkload, hours, maxHoursPerDay float64) *domain.DriverWorkload {
	var best *domain.DriverWorkload
	for _, w := range workloads {
		// Same sum AddDelivery stores, so an accepted delivery never leaves
		// HoursUsed above the cap.
		if w.HoursUsed+hours > maxHoursPerDay {
			continue
		}
		// Strict less-than keeps the first driver on ties.
		if best == nil || w.DeliveryCount < best.DeliveryCount {
			best = w
		}
	}
	return best
}

// NewWorkloads builds a zeroed workload per driver, preserving order.
func NewWorkloads(drivers []domain.Driver) []*domain.DriverWorkload {
	workloads := make([]*domain.DriverWorkload, 0, len(drivers))
	for _, d := range drivers {
		workloads = append(workloads, &domain.DriverWorkload{Driver: d})
	}
	return workloads
}
