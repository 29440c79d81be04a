package domain

// Represents a pre-computed delivery route.
// Estimates come from an external planner; the simulation never re-routes.
// FuelCostRate is currency per distance unit.
type Route struct {
	ID                   string
	Name                 string
	StartLocation        string
	EndLocation          string
	EstimatedTimeMinutes float64
	Distance             float64
	FuelCostRate         float64
}
