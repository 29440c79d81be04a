package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DriverRepository port.
type PostgresDriverRepository struct{ DB *sql.DB }

func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

// Return active drivers in creation order.
func (s *PostgresDriverRepository) ListActiveDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "drivers.ListActiveDrivers")(&err)

	return s.list(ctx, `
	SELECT id, name, max_hours_per_day, is_active
	FROM drivers
	WHERE is_active
	ORDER BY created_at, id;
	`)
}

// Return all drivers in creation order.
func (s *PostgresDriverRepository) ListDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "drivers.ListDrivers")(&err)

	return s.list(ctx, `
	SELECT id, name, max_hours_per_day, is_active
	FROM drivers
	ORDER BY created_at, id;
	`)
}

func (s *PostgresDriverRepository) list(ctx context.Context, query string) ([]domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("postgres driver repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0, 16)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.MaxHoursPerDay, &d.IsActive); err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

func (s *PostgresDriverRepository) GetDriver(ctx context.Context, id string) (_ domain.Driver, err error) {
	defer obs.Time(ctx, "drivers.GetDriver")(&err)

	if s.DB == nil {
		return domain.Driver{}, errors.New("postgres driver repository: DB is nil")
	}

	var d domain.Driver
	if err := s.DB.QueryRowContext(ctx, `
	SELECT id, name, max_hours_per_day, is_active
	FROM drivers
	WHERE id = $1;
	`, id).Scan(&d.ID, &d.Name, &d.MaxHoursPerDay, &d.IsActive); err != nil {
		return domain.Driver{}, fmt.Errorf("get driver id=%s: %w", id, classify(err, "driver", id))
	}
	return d, nil
}

func (s *PostgresDriverRepository) CreateDriver(ctx context.Context, d domain.Driver) (err error) {
	defer obs.Time(ctx, "drivers.CreateDriver")(&err)

	if s.DB == nil {
		return errors.New("postgres driver repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO drivers (id, name, max_hours_per_day, is_active)
	VALUES ($1, $2, $3, $4);
	`, d.ID, d.Name, d.MaxHoursPerDay, d.IsActive); err != nil {
		return fmt.Errorf("create driver id=%s: %w", d.ID, classify(err, "driver", d.ID))
	}
	return nil
}

func (s *PostgresDriverRepository) UpdateDriver(ctx context.Context, d domain.Driver) (err error) {
	defer obs.Time(ctx, "drivers.UpdateDriver")(&err)

	if s.DB == nil {
		return errors.New("postgres driver repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE drivers
	SET name = $2, max_hours_per_day = $3, is_active = $4
	WHERE id = $1;
	`, d.ID, d.Name, d.MaxHoursPerDay, d.IsActive)
	if err != nil {
		return fmt.Errorf("update driver id=%s: %w", d.ID, err)
	}
	if err := requireRow(res, "driver", d.ID); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

func (s *PostgresDriverRepository) DeleteDriver(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "drivers.DeleteDriver")(&err)

	if s.DB == nil {
		return errors.New("postgres driver repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete driver id=%s: %w", id, err)
	}
	if err := requireRow(res, "driver", id); err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
