package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

func (s *PostgresOrderRepository) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ListOrders(ctx, ports.OrderFilter{Status: domain.OrderPending})
}

// Return orders matching the filter in creation order.
func (s *PostgresOrderRepository) ListOrders(ctx context.Context, filter ports.OrderFilter) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres order repository: DB is nil")
	}

	query := `
	SELECT id, order_value, priority, status, COALESCE(route_id, '')
	FROM orders
	WHERE ($1 = '' OR status = $1)
	  AND ($2 = '' OR priority = $2)
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, query, string(filter.Status), string(filter.Priority))
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var priority, status string
	if err := row.Scan(&o.ID, &o.OrderValue, &priority, &status, &o.RouteID); err != nil {
		return domain.Order{}, err
	}
	o.Priority = domain.Priority(priority)
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (s *PostgresOrderRepository) GetOrder(ctx context.Context, id string) (_ domain.Order, err error) {
	defer obs.Time(ctx, "orders.GetOrder")(&err)

	if s.DB == nil {
		return domain.Order{}, errors.New("postgres order repository: DB is nil")
	}

	o, err := scanOrder(s.DB.QueryRowContext(ctx, `
	SELECT id, order_value, priority, status, COALESCE(route_id, '')
	FROM orders
	WHERE id = $1;
	`, id))
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order id=%s: %w", id, classify(err, "order", id))
	}
	return o, nil
}

func (s *PostgresOrderRepository) CreateOrder(ctx context.Context, o domain.Order) (err error) {
	defer obs.Time(ctx, "orders.CreateOrder")(&err)

	if s.DB == nil {
		return errors.New("postgres order repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO orders (id, order_value, priority, status, route_id)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''));
	`, o.ID, o.OrderValue, string(o.Priority), string(o.Status), o.RouteID); err != nil {
		return fmt.Errorf("create order id=%s: %w", o.ID, classify(err, "order", o.ID))
	}
	return nil
}

func (s *PostgresOrderRepository) UpdateOrder(ctx context.Context, o domain.Order) (err error) {
	defer obs.Time(ctx, "orders.UpdateOrder")(&err)

	if s.DB == nil {
		return errors.New("postgres order repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE orders
	SET order_value = $2, priority = $3, status = $4, route_id = NULLIF($5, '')
	WHERE id = $1;
	`, o.ID, o.OrderValue, string(o.Priority), string(o.Status), o.RouteID)
	if err != nil {
		return fmt.Errorf("update order id=%s: %w", o.ID, err)
	}
	if err := requireRow(res, "order", o.ID); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (s *PostgresOrderRepository) DeleteOrder(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "orders.DeleteOrder")(&err)

	if s.DB == nil {
		return errors.New("postgres order repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete order id=%s: %w", id, err)
	}
	if err := requireRow(res, "order", id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
