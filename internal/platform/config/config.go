package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Duration parses a Go duration from the environment.
func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

// Int64 parses an optional integer. ok is false when the key is unset.
func Int64(key string) (n int64, ok bool, err error) {
	v := Get(key, "")
	if v == "" {
		return 0, false, nil
	}

	n, err = strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("config: parse %s=%q as integer: %w", key, v, err)
	}
	return n, true, nil
}

// Server holds everything cmd/server needs to start.
type Server struct {
	DatabaseURL   string
	Port          string
	RedisURL      string
	RouteCacheTTL time.Duration
	AMQPURL       string
	AMQPExchange  string
	Seed          int64
	HasSeed       bool
}

func LoadServer() (Server, error) {
	cfg := Server{
		DatabaseURL:  Get("DATABASE_URL", ""),
		Port:         Get("PORT", "8080"),
		RedisURL:     Get("REDIS_URL", ""),
		AMQPURL:      Get("AMQP_URL", ""),
		AMQPExchange: Get("AMQP_EXCHANGE", "simulation.results"),
	}

	if cfg.DatabaseURL == "" {
		return Server{}, fmt.Errorf("config: DATABASE_URL is required")
	}

	ttl, err := Duration("ROUTE_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Server{}, err
	}
	cfg.RouteCacheTTL = ttl

	seed, ok, err := Int64("SIMULATION_SEED")
	if err != nil {
		return Server{}, err
	}
	cfg.Seed, cfg.HasSeed = seed, ok

	return cfg, nil
}
