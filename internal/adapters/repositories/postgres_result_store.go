package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresResultStore persists simulation runs and serves them back for history.
// It implements both ResultSink and ResultHistory.
type PostgresResultStore struct{ DB *sql.DB }

func NewPostgresResultStore(db *sql.DB) *PostgresResultStore {
	return &PostgresResultStore{DB: db}
}

func (s *PostgresResultStore) Save(ctx context.Context, record domain.SimulationRecord) (err error) {
	defer obs.Time(ctx, "results.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres result store: DB is nil")
	}

	utilization, err := json.Marshal(nonNil(record.Result.DriverUtilization))
	if err != nil {
		return fmt.Errorf("save result: marshal driver utilization: %w", err)
	}
	hourly, err := json.Marshal(nonNil(record.Result.HourlyPerformance))
	if err != nil {
		return fmt.Errorf("save result: marshal hourly performance: %w", err)
	}

	p, r := record.Parameters, record.Result
	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO simulation_results (
		id,
		driver_count,
		start_time,
		max_hours_per_day,
		total_profit,
		efficiency_score,
		on_time_deliveries,
		late_deliveries,
		assigned_deliveries,
		unassigned_deliveries,
		total_fuel_cost,
		average_delivery_time,
		driver_utilization,
		hourly_performance,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, $14::jsonb, $15);
	`,
		record.ID,
		p.DriverCount,
		p.StartTime.String(),
		p.MaxHoursPerDay,
		r.TotalProfit,
		r.EfficiencyScore,
		r.OnTimeCount,
		r.LateCount,
		r.AssignedCount,
		r.UnassignedCount,
		r.TotalFuelCost,
		r.AverageDeliveryTimeMinutes,
		string(utilization),
		string(hourly),
		record.CreatedAt,
	); err != nil {
		return fmt.Errorf("save result id=%s: %w", record.ID, err)
	}

	return nil
}

// Return saved runs newest first.
func (s *PostgresResultStore) ListResults(ctx context.Context, limit, offset int) (_ []domain.SimulationRecord, err error) {
	defer obs.Time(ctx, "results.ListResults")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres result store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		driver_count,
		start_time,
		max_hours_per_day,
		total_profit,
		efficiency_score,
		on_time_deliveries,
		late_deliveries,
		assigned_deliveries,
		unassigned_deliveries,
		total_fuel_cost,
		average_delivery_time,
		driver_utilization,
		hourly_performance,
		created_at
	FROM simulation_results
	ORDER BY created_at DESC, id
	LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list results: query simulation_results table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SimulationRecord, 0, limit)
	for rows.Next() {
		var rec domain.SimulationRecord
		var startTime string
		var utilization, hourly []byte
		p, r := &rec.Parameters, &rec.Result

		if err := rows.Scan(
			&rec.ID,
			&p.DriverCount,
			&startTime,
			&p.MaxHoursPerDay,
			&r.TotalProfit,
			&r.EfficiencyScore,
			&r.OnTimeCount,
			&r.LateCount,
			&r.AssignedCount,
			&r.UnassignedCount,
			&r.TotalFuelCost,
			&r.AverageDeliveryTimeMinutes,
			&utilization,
			&hourly,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}

		if p.StartTime, err = domain.ParseClockTime(startTime); err != nil {
			return nil, fmt.Errorf("list results: id=%s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(utilization, &r.DriverUtilization); err != nil {
			return nil, fmt.Errorf("list results: id=%s: decode driver utilization: %w", rec.ID, err)
		}
		if err := json.Unmarshal(hourly, &r.HourlyPerformance); err != nil {
			return nil, fmt.Errorf("list results: id=%s: decode hourly performance: %w", rec.ID, err)
		}
		r.RunID = rec.ID

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return records, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
