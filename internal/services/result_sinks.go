package services

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
)

// MultiSink saves a record to every sink, even when earlier ones fail.
type MultiSink []ports.ResultSink

func (m MultiSink) Save(ctx context.Context, record domain.SimulationRecord) error {
	var errs []error
	for i, s := range m {
		if s == nil {
			continue
		}
		if err := s.Save(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("sink #%d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}
