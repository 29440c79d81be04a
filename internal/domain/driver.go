package domain

// Represents a driver as read from storage.
// MaxHoursPerDay is the driver's own cap; a simulation run overrides it
// with SimulationParameters.MaxHoursPerDay.
type Driver struct {
	ID             string
	Name           string
	MaxHoursPerDay float64
	IsActive       bool
}

// DisplayName falls back to a generated label for unnamed drivers.
func (d Driver) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return "Driver " + d.ID
}
