package services

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"fmt"
	"math"
	"time"
)

// HistoryEntry is the condensed view of a saved run used for browsing.
type HistoryEntry struct {
	ID                         string
	Timestamp                  time.Time
	DriverCount                int
	StartTime                  string
	MaxHoursPerDay             float64
	TotalProfit                float64
	EfficiencyScore            float64
	OnTimeCount                int
	LateCount                  int
	TotalFuelCost              float64
	AverageDeliveryTimeMinutes float64
	AverageUtilization         int
	AverageHourlyDeliveries    int
}

func ListSimulationHistory(ctx context.Context, history ports.ResultHistory, limit, offset int) ([]HistoryEntry, error) {
	records, err := history.ListResults(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list simulation history: %w", err)
	}

	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, SummarizeRecord(r))
	}
	return out, nil
}

func SummarizeRecord(r domain.SimulationRecord) HistoryEntry {
	res := r.Result

	var util, hourly float64
	for _, u := range res.DriverUtilization {
		util += float64(u.Utilization)
	}
	if n := len(res.DriverUtilization); n > 0 {
		util /= float64(n)
	}
	for _, h := range res.HourlyPerformance {
		hourly += float64(h.Deliveries)
	}
	if n := len(res.HourlyPerformance); n > 0 {
		hourly /= float64(n)
	}

	return HistoryEntry{
		ID:                         r.ID,
		Timestamp:                  r.CreatedAt,
		DriverCount:                r.Parameters.DriverCount,
		StartTime:                  r.Parameters.StartTime.String(),
		MaxHoursPerDay:             r.Parameters.MaxHoursPerDay,
		TotalProfit:                res.TotalProfit,
		EfficiencyScore:            res.EfficiencyScore,
		OnTimeCount:                res.OnTimeCount,
		LateCount:                  res.LateCount,
		TotalFuelCost:              res.TotalFuelCost,
		AverageDeliveryTimeMinutes: res.AverageDeliveryTimeMinutes,
		AverageUtilization:         int(math.Round(util)),
		AverageHourlyDeliveries:    int(math.Round(hourly)),
	}
}
