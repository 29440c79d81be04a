package services

import (
	"context"
	"delivery-simulation-service/internal/adapters/repositories"
	"delivery-simulation-service/internal/domain"
	"errors"
	"testing"
	"time"
)

func TestSummarizeRecord(t *testing.T) {
	rec := domain.SimulationRecord{
		ID:         "run-9",
		CreatedAt:  fixedNow,
		Parameters: params(2, "07:15", 6),
		Result: domain.SimulationResult{
			TotalProfit:     1234.5,
			EfficiencyScore: 87.2,
			OnTimeCount:     9,
			LateCount:       2,
			DriverUtilization: []domain.DriverUtilization{
				{DriverID: "a", Utilization: 80},
				{DriverID: "b", Utilization: 65},
			},
			HourlyPerformance: []domain.HourlyPerformance{
				{Hour: "07:15", Deliveries: 3},
				{Hour: "08:15", Deliveries: 2},
				{Hour: "09:15", Deliveries: 2},
			},
		},
	}

	got := SummarizeRecord(rec)

	if got.ID != "run-9" || got.StartTime != "07:15" || got.DriverCount != 2 || got.MaxHoursPerDay != 6 {
		t.Errorf("parameters = %+v", got)
	}
	if got.AverageUtilization != 73 {
		t.Errorf("average utilization = %d, want 73", got.AverageUtilization)
	}
	if got.AverageHourlyDeliveries != 2 {
		t.Errorf("average hourly deliveries = %d, want 2", got.AverageHourlyDeliveries)
	}
	if got.OnTimeCount != 9 || got.LateCount != 2 || got.TotalProfit != 1234.5 {
		t.Errorf("kpis = %+v", got)
	}
}

func TestSummarizeRecordWithoutBreakdowns(t *testing.T) {
	got := SummarizeRecord(domain.SimulationRecord{Parameters: params(1, "08:00", 8)})
	if got.AverageUtilization != 0 || got.AverageHourlyDeliveries != 0 {
		t.Fatalf("averages = %d/%d, want 0/0", got.AverageUtilization, got.AverageHourlyDeliveries)
	}
}

func TestListSimulationHistory(t *testing.T) {
	store := repositories.NewMemoryStore(nil, nil, nil)
	for i, id := range []string{"old", "mid", "new"} {
		store.Records = append(store.Records, domain.SimulationRecord{
			ID:         id,
			CreatedAt:  fixedNow.Add(time.Duration(i) * time.Hour),
			Parameters: params(1, "08:00", 8),
		})
	}

	entries, err := ListSimulationHistory(context.Background(), store, 2, 0)
	if err != nil {
		t.Fatalf("ListSimulationHistory: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "new" || entries[1].ID != "mid" {
		t.Fatalf("entries = %+v, want new then mid", entries)
	}

	entries, err = ListSimulationHistory(context.Background(), store, 10, 2)
	if err != nil {
		t.Fatalf("ListSimulationHistory: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "old" {
		t.Fatalf("entries with offset = %+v, want old", entries)
	}
}

type failingHistory struct{ err error }

func (f failingHistory) ListResults(context.Context, int, int) ([]domain.SimulationRecord, error) {
	return nil, f.err
}

func TestListSimulationHistoryError(t *testing.T) {
	boom := errors.New("timeout")
	if _, err := ListSimulationHistory(context.Background(), failingHistory{boom}, 10, 0); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
