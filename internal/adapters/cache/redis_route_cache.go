package cache

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const routesKey = "routes:all"

type cachedRoute struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	StartLocation        string  `json:"start_location"`
	EndLocation          string  `json:"end_location"`
	EstimatedTimeMinutes float64 `json:"estimated_time_minutes"`
	Distance             float64 `json:"distance"`
	FuelCostRate         float64 `json:"fuel_cost_rate"`
}

// RedisRouteCache decorates a RouteRepository with a Redis-backed copy of the
// route list. Routes change rarely and are read on every simulation run.
// Cache failures fall through to the underlying repository.
type RedisRouteCache struct {
	Client *redis.Client
	Next   ports.RouteRepository
	TTL    time.Duration
	Prefix string
}

func NewRedisRouteCache(client *redis.Client, next ports.RouteRepository, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, Next: next, TTL: ttl, Prefix: "delivery-sim:"}
}

func (c *RedisRouteCache) key() string { return c.Prefix + routesKey }

func (c *RedisRouteCache) ListRoutes(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.cache.ListRoutes")(&err)

	if c.Next == nil {
		return nil, errors.New("route cache: next repository is nil")
	}

	if c.Client != nil {
		routes, hit, err := c.get(ctx)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		}
		if hit {
			return routes, nil
		}
	}

	routes, err := c.Next.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	if c.Client != nil {
		if err := c.put(ctx, routes); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return routes, nil
}

// GetRoute reads through to the repository; only the full list is cached.
func (c *RedisRouteCache) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	if c.Next == nil {
		return domain.Route{}, errors.New("route cache: next repository is nil")
	}
	return c.Next.GetRoute(ctx, id)
}

func (c *RedisRouteCache) CreateRoute(ctx context.Context, r domain.Route) error {
	return c.write(ctx, "routes.cache.CreateRoute", func() error { return c.Next.CreateRoute(ctx, r) })
}

func (c *RedisRouteCache) UpdateRoute(ctx context.Context, r domain.Route) error {
	return c.write(ctx, "routes.cache.UpdateRoute", func() error { return c.Next.UpdateRoute(ctx, r) })
}

func (c *RedisRouteCache) DeleteRoute(ctx context.Context, id string) error {
	return c.write(ctx, "routes.cache.DeleteRoute", func() error { return c.Next.DeleteRoute(ctx, id) })
}

// write applies a change to the repository and drops the cached list once it lands.
func (c *RedisRouteCache) write(ctx context.Context, op string, apply func() error) (err error) {
	defer obs.Time(ctx, op)(&err)

	if c.Next == nil {
		return errors.New("route cache: next repository is nil")
	}
	if err := apply(); err != nil {
		return err
	}
	if err := c.Invalidate(ctx); err != nil {
		log.Printf("req_id=%s route cache invalidate failed: %v", obs.RequestID(ctx), err)
	}
	return nil
}

// Invalidate drops the cached route list.
func (c *RedisRouteCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("route cache: invalidate: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) get(ctx context.Context) ([]domain.Route, bool, error) {
	b, err := c.Client.Get(ctx, c.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache: get: %w", err)
	}

	var cached []cachedRoute
	if err := json.Unmarshal(b, &cached); err != nil {
		return nil, false, fmt.Errorf("route cache: decode: %w", err)
	}

	routes := make([]domain.Route, 0, len(cached))
	for _, r := range cached {
		routes = append(routes, domain.Route{
			ID:                   r.ID,
			Name:                 r.Name,
			StartLocation:        r.StartLocation,
			EndLocation:          r.EndLocation,
			EstimatedTimeMinutes: r.EstimatedTimeMinutes,
			Distance:             r.Distance,
			FuelCostRate:         r.FuelCostRate,
		})
	}
	return routes, true, nil
}

func (c *RedisRouteCache) put(ctx context.Context, routes []domain.Route) error {
	cached := make([]cachedRoute, 0, len(routes))
	for _, r := range routes {
		cached = append(cached, cachedRoute{
			ID:                   r.ID,
			Name:                 r.Name,
			StartLocation:        r.StartLocation,
			EndLocation:          r.EndLocation,
			EstimatedTimeMinutes: r.EstimatedTimeMinutes,
			Distance:             r.Distance,
			FuelCostRate:         r.FuelCostRate,
		})
	}

	b, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("route cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, c.key(), b, c.TTL).Err(); err != nil {
		return fmt.Errorf("route cache: set: %w", err)
	}
	return nil
}
