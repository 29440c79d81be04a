package dto

type DriverResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MaxHoursPerDay float64 `json:"max_hours_per_day"`
	IsActive       bool    `json:"is_active"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

type RouteResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	StartLocation        string  `json:"start_location"`
	EndLocation          string  `json:"end_location"`
	EstimatedTimeMinutes float64 `json:"estimated_time_minutes"`
	Distance             float64 `json:"distance"`
	FuelCostRate         float64 `json:"fuel_cost_rate"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type OrderResponse struct {
	ID         string  `json:"id"`
	OrderValue float64 `json:"order_value"`
	Priority   string  `json:"priority"`
	Status     string  `json:"status"`
	RouteID    *string `json:"route_id"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// DriverRequest is the body of POST /drivers and PUT /drivers/{id}.
// The id is taken from the path on update; on create it is generated when empty.
type DriverRequest struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	MaxHoursPerDay float64 `json:"max_hours_per_day"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type RouteRequest struct {
	ID                   string  `json:"id,omitempty"`
	Name                 string  `json:"name"`
	StartLocation        string  `json:"start_location"`
	EndLocation          string  `json:"end_location"`
	EstimatedTimeMinutes float64 `json:"estimated_time_minutes"`
	Distance             float64 `json:"distance"`
	FuelCostRate         float64 `json:"fuel_cost_rate"`
}

type OrderRequest struct {
	ID         string  `json:"id,omitempty"`
	OrderValue float64 `json:"order_value"`
	Priority   string  `json:"priority,omitempty"`
	Status     string  `json:"status,omitempty"`
	RouteID    *string `json:"route_id,omitempty"`
}
