package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// Port: best-effort persistence of finished simulation runs.
type ResultSink interface {
	Save(ctx context.Context, record domain.SimulationRecord) error
}

// Port: browsing previously saved runs, newest first.
type ResultHistory interface {
	ListResults(ctx context.Context, limit, offset int) ([]domain.SimulationRecord, error)
}
