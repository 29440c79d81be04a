package api

import (
	"delivery-simulation-service/internal/api/handlers"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"net/http"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Engine  handlers.SimulationRunner
	History ports.ResultHistory
	Drivers ports.DriverRepository
	Orders  ports.OrderRepository
	// Routes should be the cached repository when one is configured, so
	// route writes through the API drop the cached list.
	Routes ports.RouteRepository
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	simHandler := &handlers.SimulationHandler{
		Engine:  deps.Engine,
		Results: deps.History,
	}
	fleetHandler := &handlers.FleetHandler{
		Fleet: services.NewFleetService(deps.Drivers, deps.Orders, deps.Routes),
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/simulations/run", simHandler.Run)
	mux.HandleFunc("/simulations/history", simHandler.History)
	mux.HandleFunc("/drivers", fleetHandler.Drivers)
	mux.HandleFunc("/drivers/{id}", fleetHandler.Driver)
	mux.HandleFunc("/routes", fleetHandler.Routes)
	mux.HandleFunc("/routes/{id}", fleetHandler.Route)
	mux.HandleFunc("/orders", fleetHandler.Orders)
	mux.HandleFunc("/orders/{id}", fleetHandler.Order)

	return requestIDMiddleware(loggingMiddleware(mux))
}
