package services

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// SimulationEngine answers "what if I run N drivers from T with an H-hour cap".
//
// Each Run is a synchronous batch: snapshot read, materialize, assign,
// aggregate, persist. All mutable state lives in a per-run simulationRun, so
// concurrent runs against the same engine are safe.
type SimulationEngine struct {
	Loader    *SnapshotLoader
	Scheduler Scheduler
	// Sink is optional; persistence failures are logged and never fail the run.
	Sink ports.ResultSink
	// NewRandom is called once per run.
	NewRandom func() RandomSource
	Now       func() time.Time
	NewRunID  func() string
}

func NewSimulationEngine(loader *SnapshotLoader, sink ports.ResultSink) *SimulationEngine {
	return &SimulationEngine{
		Loader:    loader,
		Scheduler: GreedyScheduler{},
		Sink:      sink,
		NewRandom: NewTimeSeededSource,
		Now:       time.Now,
		NewRunID:  uuid.NewString,
	}
}

// simulationRun carries one run's state from stage to stage.
type simulationRun struct {
	params     domain.SimulationParameters
	snapshot   *Snapshot
	random     RandomSource
	deliveries []*domain.Delivery
	workloads  []*domain.DriverWorkload
	result     domain.SimulationResult
}

// Run executes one simulation and returns its KPIs.
//
// Errors wrap domain.ErrInvalidParameters, domain.ErrInsufficientDrivers or
// domain.ErrStorageUnavailable.
func (e *SimulationEngine) Run(ctx context.Context, params domain.SimulationParameters) (_ domain.SimulationResult, err error) {
	defer obs.Time(ctx, "simulation.Run")(&err)

	run, err := e.execute(ctx, params)
	if err != nil {
		return domain.SimulationResult{}, err
	}

	e.save(ctx, run)

	return run.result, nil
}

func (e *SimulationEngine) execute(ctx context.Context, params domain.SimulationParameters) (*simulationRun, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	snapshot, err := e.Loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}

	if params.DriverCount > len(snapshot.Drivers) {
		return nil, fmt.Errorf("run simulation: %w", &domain.InsufficientDriversError{
			Requested: params.DriverCount,
			Available: len(snapshot.Drivers),
		})
	}

	run := &simulationRun{
		params:   params,
		snapshot: snapshot,
		random:   e.random(),
	}

	materializer := &Materializer{Random: run.random}
	run.deliveries = materializer.MaterializeDeliveries(snapshot.Orders, snapshot.Routes)

	// The first DriverCount active drivers, in snapshot order, are the fleet.
	run.workloads = NewWorkloads(snapshot.Drivers[:params.DriverCount])
	e.scheduler().Assign(run.deliveries, run.workloads, params.MaxHoursPerDay)

	aggregator := &Aggregator{Random: run.random}
	run.result = aggregator.Aggregate(run.deliveries, run.workloads, params)
	run.result.RunID = e.runID()

	log.Printf(
		"req_id=%s op=simulation.summary run_id=%s drivers=%d orders=%d deliveries=%d unassigned=%d profit=%.2f efficiency=%.1f",
		obs.RequestID(ctx), run.result.RunID, params.DriverCount, len(snapshot.Orders),
		len(run.deliveries), run.result.UnassignedCount, run.result.TotalProfit, run.result.EfficiencyScore,
	)

	return run, nil
}

// ValidateParameters applies the engine's own checks. Range checks on the
// request belong to the API layer.
func ValidateParameters(params domain.SimulationParameters) error {
	if params.DriverCount <= 0 {
		return fmt.Errorf("%w: driver count must be positive, got %d", domain.ErrInvalidParameters, params.DriverCount)
	}
	if params.MaxHoursPerDay <= 0 {
		return fmt.Errorf("%w: max hours per day must be positive, got %v", domain.ErrInvalidParameters, params.MaxHoursPerDay)
	}
	return nil
}

func (e *SimulationEngine) save(ctx context.Context, run *simulationRun) {
	if e.Sink == nil {
		return
	}

	record := domain.SimulationRecord{
		ID:         run.result.RunID,
		CreatedAt:  e.now(),
		Parameters: run.params,
		Result:     run.result,
	}

	if err := e.Sink.Save(ctx, record); err != nil {
		log.Printf("req_id=%s save simulation result failed run_id=%s: %v", obs.RequestID(ctx), record.ID, err)
	}
}

func (e *SimulationEngine) random() RandomSource {
	if e.NewRandom == nil {
		return NewTimeSeededSource()
	}
	return e.NewRandom()
}

func (e *SimulationEngine) scheduler() Scheduler {
	if e.Scheduler == nil {
		return GreedyScheduler{}
	}
	return e.Scheduler
}

func (e *SimulationEngine) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now().UTC()
}

func (e *SimulationEngine) runID() string {
	if e.NewRunID == nil {
		return uuid.NewString()
	}
	return e.NewRunID()
}
