package domain

// Delivery is the run-scoped projection of one Order fulfilled via one Route.
// AssignedDriverID is empty when no driver could take it within the fatigue rule.
type Delivery struct {
	OrderID              string
	RouteID              string
	OrderValue           float64
	Priority             Priority
	ProjectedTimeMinutes float64
	ProjectedDistance    float64
	FuelCost             float64
	IsLate               bool
	Profit               float64
	AssignedDriverID     string
}

func (d *Delivery) Assigned() bool { return d.AssignedDriverID != "" }

// DriverWorkload accumulates one eligible driver's assignments during a run.
type DriverWorkload struct {
	Driver        Driver
	HoursUsed     float64
	DeliveryCount int
}

// AddDelivery books the delivery's projected hours against the driver.
func (w *DriverWorkload) AddDelivery(d *Delivery) {
	w.HoursUsed += d.ProjectedTimeMinutes / 60
	w.DeliveryCount++
	d.AssignedDriverID = w.Driver.ID
}
