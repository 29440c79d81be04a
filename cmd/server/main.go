package main

import (
	"context"
	"delivery-simulation-service/internal/adapters/cache"
	"delivery-simulation-service/internal/adapters/events"
	"delivery-simulation-service/internal/adapters/repositories"
	"delivery-simulation-service/internal/api"
	"delivery-simulation-service/internal/platform/config"
	"delivery-simulation-service/internal/platform/db"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, RabbitMQ) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal(err)
	}

	drivers := repositories.NewPostgresDriverRepository(sqlDB)
	orders := repositories.NewPostgresOrderRepository(sqlDB)
	store := repositories.NewPostgresResultStore(sqlDB)

	var routes ports.RouteRepository = repositories.NewPostgresRouteRepository(sqlDB)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		routes = cache.NewRedisRouteCache(rdb, routes, cfg.RouteCacheTTL)
		log.Printf("route cache enabled ttl=%s", cfg.RouteCacheTTL)
	}

	sink := services.MultiSink{store}
	if cfg.AMQPURL != "" {
		conn, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		sink = append(sink, events.NewAMQPResultPublisher(conn.Channel(), cfg.AMQPExchange))
		log.Printf("result publishing enabled exchange=%s", cfg.AMQPExchange)
	}

	loader := &services.SnapshotLoader{Drivers: drivers, Orders: orders, Routes: routes}
	engine := services.NewSimulationEngine(loader, sink)
	if cfg.HasSeed {
		seed := cfg.Seed
		engine.NewRandom = func() services.RandomSource { return services.NewSeededSource(seed) }
		log.Printf("simulation seed fixed seed=%d", seed)
	}

	router := api.NewRouter(api.Deps{
		Engine:  engine,
		History: store,
		Drivers: drivers,
		Orders:  orders,
		Routes:  routes,
	})

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
