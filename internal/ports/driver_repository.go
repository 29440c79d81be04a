package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// Port: driver records.
type DriverRepository interface {
	// Retrieve active drivers in a stable order (the snapshot order used for tie-breaks).
	ListActiveDrivers(ctx context.Context) ([]domain.Driver, error)
	// Retrieve all drivers, active or not.
	ListDrivers(ctx context.Context) ([]domain.Driver, error)

	// Write side. Missing ids yield domain.ErrNotFound, duplicate ids domain.ErrConflict.
	GetDriver(ctx context.Context, id string) (domain.Driver, error)
	CreateDriver(ctx context.Context, d domain.Driver) error
	UpdateDriver(ctx context.Context, d domain.Driver) error
	DeleteDriver(ctx context.Context, id string) error
}
