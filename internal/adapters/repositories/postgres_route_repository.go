package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// Return all routes in creation order, so the fallback route is stable.
func (s *PostgresRouteRepository) ListRoutes(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.ListRoutes")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres route repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		start_location,
		end_location,
		estimated_time_minutes,
		distance,
		fuel_cost_rate
	FROM routes
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 16)
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

func scanRoute(row rowScanner) (domain.Route, error) {
	var r domain.Route
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.StartLocation,
		&r.EndLocation,
		&r.EstimatedTimeMinutes,
		&r.Distance,
		&r.FuelCostRate,
	)
	return r, err
}

func (s *PostgresRouteRepository) GetRoute(ctx context.Context, id string) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.GetRoute")(&err)

	if s.DB == nil {
		return domain.Route{}, errors.New("postgres route repository: DB is nil")
	}

	r, err := scanRoute(s.DB.QueryRowContext(ctx, `
	SELECT id, name, start_location, end_location, estimated_time_minutes, distance, fuel_cost_rate
	FROM routes
	WHERE id = $1;
	`, id))
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route id=%s: %w", id, classify(err, "route", id))
	}
	return r, nil
}

func (s *PostgresRouteRepository) CreateRoute(ctx context.Context, r domain.Route) (err error) {
	defer obs.Time(ctx, "routes.CreateRoute")(&err)

	if s.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO routes (id, name, start_location, end_location, estimated_time_minutes, distance, fuel_cost_rate)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, r.ID, r.Name, r.StartLocation, r.EndLocation, r.EstimatedTimeMinutes, r.Distance, r.FuelCostRate); err != nil {
		return fmt.Errorf("create route id=%s: %w", r.ID, classify(err, "route", r.ID))
	}
	return nil
}

func (s *PostgresRouteRepository) UpdateRoute(ctx context.Context, r domain.Route) (err error) {
	defer obs.Time(ctx, "routes.UpdateRoute")(&err)

	if s.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE routes
	SET name = $2,
		start_location = $3,
		end_location = $4,
		estimated_time_minutes = $5,
		distance = $6,
		fuel_cost_rate = $7
	WHERE id = $1;
	`, r.ID, r.Name, r.StartLocation, r.EndLocation, r.EstimatedTimeMinutes, r.Distance, r.FuelCostRate)
	if err != nil {
		return fmt.Errorf("update route id=%s: %w", r.ID, err)
	}
	if err := requireRow(res, "route", r.ID); err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	return nil
}

// Check and delete run in one transaction holding the route row lock, so no
// order can start referencing the route in between.
func (s *PostgresRouteRepository) DeleteRoute(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "routes.DeleteRoute")(&err)

	if s.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var locked string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM routes WHERE id = $1 FOR UPDATE;`, id).Scan(&locked); err != nil {
		return fmt.Errorf("delete route id=%s: %w", id, classify(err, "route", id))
	}

	var referenced bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE route_id = $1);`, id).Scan(&referenced); err != nil {
		return fmt.Errorf("delete route id=%s: check orders: %w", id, err)
	}
	if referenced {
		return fmt.Errorf("delete route id=%s: %w: orders still reference it", id, domain.ErrInUse)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM routes WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete route id=%s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete route: commit tx: %w", err)
	}
	return nil
}
