package events

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ResultCompleted is the message body published for every finished run.
type ResultCompleted struct {
	RunID                      string                     `json:"run_id"`
	CreatedAt                  time.Time                  `json:"created_at"`
	DriverCount                int                        `json:"driver_count"`
	StartTime                  string                     `json:"start_time"`
	MaxHoursPerDay             float64                    `json:"max_hours_per_day"`
	TotalProfit                float64                    `json:"total_profit"`
	EfficiencyScore            float64                    `json:"efficiency_score"`
	OnTimeDeliveries           int                        `json:"on_time_deliveries"`
	LateDeliveries             int                        `json:"late_deliveries"`
	UnassignedDeliveries       int                        `json:"unassigned_deliveries"`
	TotalFuelCost              float64                    `json:"total_fuel_cost"`
	AverageDeliveryTimeMinutes float64                    `json:"average_delivery_time"`
	DriverUtilization          []domain.DriverUtilization `json:"driver_utilization"`
	HourlyPerformance          []domain.HourlyPerformance `json:"hourly_performance"`
}

func NewResultCompleted(r domain.SimulationRecord) ResultCompleted {
	return ResultCompleted{
		RunID:                      r.ID,
		CreatedAt:                  r.CreatedAt,
		DriverCount:                r.Parameters.DriverCount,
		StartTime:                  r.Parameters.StartTime.String(),
		MaxHoursPerDay:             r.Parameters.MaxHoursPerDay,
		TotalProfit:                r.Result.TotalProfit,
		EfficiencyScore:            r.Result.EfficiencyScore,
		OnTimeDeliveries:           r.Result.OnTimeCount,
		LateDeliveries:             r.Result.LateCount,
		UnassignedDeliveries:       r.Result.UnassignedCount,
		TotalFuelCost:              r.Result.TotalFuelCost,
		AverageDeliveryTimeMinutes: r.Result.AverageDeliveryTimeMinutes,
		DriverUtilization:          r.Result.DriverUtilization,
		HourlyPerformance:          r.Result.HourlyPerformance,
	}
}

// AMQPResultPublisher is a ResultSink that fans finished runs out to a
// RabbitMQ exchange for downstream reporting.
type AMQPResultPublisher struct {
	ch       channel
	exchange string
	timeout  time.Duration
}

func NewAMQPResultPublisher(ch channel, exchange string) *AMQPResultPublisher {
	return &AMQPResultPublisher{ch: ch, exchange: exchange, timeout: 5 * time.Second}
}

func (p *AMQPResultPublisher) Save(ctx context.Context, record domain.SimulationRecord) (err error) {
	defer obs.Time(ctx, "results.Publish")(&err)

	if p.ch == nil {
		return errors.New("amqp result publisher: channel is nil")
	}

	body, err := json.Marshal(NewResultCompleted(record))
	if err != nil {
		return fmt.Errorf("publish result: marshal: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(pubCtx, p.exchange, "simulation.completed", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    record.ID,
		Timestamp:    record.CreatedAt,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish result id=%s: %w", record.ID, err)
	}

	return nil
}
