package domain

import "time"

// Inputs of a what-if simulation run.
type SimulationParameters struct {
	DriverCount    int
	StartTime      ClockTime
	MaxHoursPerDay float64
}

type DriverUtilization struct {
	DriverID    string `json:"driver_id"`
	Driver      string `json:"driver"`
	Utilization int    `json:"utilization"`
}

type HourlyPerformance struct {
	Hour       string `json:"hour"`
	Deliveries int    `json:"deliveries"`
	Efficiency int    `json:"efficiency"`
}

// Fleet KPIs produced by one simulation run. Immutable once returned.
type SimulationResult struct {
	RunID                      string
	TotalProfit                float64
	EfficiencyScore            float64
	OnTimeCount                int
	LateCount                  int
	AssignedCount              int
	UnassignedCount            int
	TotalFuelCost              float64
	AverageDeliveryTimeMinutes float64
	DriverUtilization          []DriverUtilization
	HourlyPerformance          []HourlyPerformance
}

// A persisted simulation run, as stored by a result sink.
type SimulationRecord struct {
	ID         string
	CreatedAt  time.Time
	Parameters SimulationParameters
	Result     SimulationResult
}
