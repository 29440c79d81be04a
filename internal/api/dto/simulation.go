package dto

import "time"

// Pointer fields distinguish an omitted value from an explicit zero.
type RunSimulationRequest struct {
	DriverCount    *int     `json:"driver_count"`
	StartTime      *string  `json:"start_time"`
	MaxHoursPerDay *float64 `json:"max_hours_per_day"`
}

type DriverUtilizationResponse struct {
	DriverID    string `json:"driver_id"`
	Driver      string `json:"driver"`
	Utilization int    `json:"utilization"`
}

type HourlyPerformanceResponse struct {
	Hour       string `json:"hour"`
	Deliveries int    `json:"deliveries"`
	Efficiency int    `json:"efficiency"`
}

type SimulationResultResponse struct {
	RunID                      string                      `json:"run_id"`
	TotalProfit                float64                     `json:"total_profit"`
	EfficiencyScore            float64                     `json:"efficiency_score"`
	OnTimeDeliveries           int                         `json:"on_time_deliveries"`
	LateDeliveries             int                         `json:"late_deliveries"`
	AssignedDeliveries         int                         `json:"assigned_deliveries"`
	UnassignedDeliveries       int                         `json:"unassigned_deliveries"`
	TotalFuelCost              float64                     `json:"total_fuel_cost"`
	AverageDeliveryTimeMinutes float64                     `json:"average_delivery_time_minutes"`
	DriverUtilization          []DriverUtilizationResponse `json:"driver_utilization"`
	HourlyPerformance          []HourlyPerformanceResponse `json:"hourly_performance"`
}

type SimulationHistoryEntry struct {
	ID                         string    `json:"id"`
	Timestamp                  time.Time `json:"timestamp"`
	DriverCount                int       `json:"driver_count"`
	StartTime                  string    `json:"start_time"`
	MaxHoursPerDay             float64   `json:"max_hours_per_day"`
	TotalProfit                float64   `json:"total_profit"`
	EfficiencyScore            float64   `json:"efficiency_score"`
	OnTimeDeliveries           int       `json:"on_time_deliveries"`
	LateDeliveries             int       `json:"late_deliveries"`
	TotalFuelCost              float64   `json:"total_fuel_cost"`
	AverageDeliveryTimeMinutes float64   `json:"average_delivery_time_minutes"`
	AverageUtilization         int       `json:"average_utilization"`
	AverageHourlyDeliveries    int       `json:"average_hourly_deliveries"`
}

type ListSimulationHistoryResponse struct {
	Simulations []SimulationHistoryEntry `json:"simulations"`
	Limit       int                      `json:"limit"`
	Offset      int                      `json:"offset"`
}
