package handlers

import (
	"context"
	"delivery-simulation-service/internal/api/dto"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"errors"
	"log"
	"net/http"
)

// Request bounds checked before a run reaches the engine.
const (
	MinDriverCount    = 1
	MaxDriverCount    = 20
	MinMaxHoursPerDay = 4
	MaxMaxHoursPerDay = 12

	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type SimulationRunner interface {
	Run(ctx context.Context, params domain.SimulationParameters) (domain.SimulationResult, error)
}

type SimulationHandler struct {
	Engine  SimulationRunner
	Results ports.ResultHistory
}

// Run validates the request, runs one simulation and returns its KPIs.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RunSimulationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	params, msg := parseRunRequest(req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	res, err := h.Engine.Run(r.Context(), params)
	if err != nil {
		writeRunError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, simulationResultResponse(res))
}

func parseRunRequest(req dto.RunSimulationRequest) (domain.SimulationParameters, string) {
	var params domain.SimulationParameters

	if req.DriverCount == nil || req.StartTime == nil || req.MaxHoursPerDay == nil {
		return params, "driver_count, start_time and max_hours_per_day are required"
	}

	if n := *req.DriverCount; n < MinDriverCount || n > MaxDriverCount {
		return params, "driver_count must be between 1 and 20"
	}

	if hrs := *req.MaxHoursPerDay; hrs < MinMaxHoursPerDay || hrs > MaxMaxHoursPerDay {
		return params, "max_hours_per_day must be between 4 and 12"
	}

	start, err := domain.ParseClockTime(*req.StartTime)
	if err != nil {
		return params, "start_time must be in HH:MM format"
	}

	params.DriverCount = *req.DriverCount
	params.StartTime = start
	params.MaxHoursPerDay = *req.MaxHoursPerDay
	return params, ""
}

func writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *domain.InsufficientDriversError

	switch {
	case errors.As(err, &insufficient):
		writeError(w, r, http.StatusBadRequest, insufficient.Error())
	case errors.Is(err, domain.ErrInvalidParameters):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Printf("run simulation failed: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.Printf("run simulation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func simulationResultResponse(res domain.SimulationResult) dto.SimulationResultResponse {
	out := dto.SimulationResultResponse{
		RunID:                      res.RunID,
		TotalProfit:                res.TotalProfit,
		EfficiencyScore:            res.EfficiencyScore,
		OnTimeDeliveries:           res.OnTimeCount,
		LateDeliveries:             res.LateCount,
		AssignedDeliveries:         res.AssignedCount,
		UnassignedDeliveries:       res.UnassignedCount,
		TotalFuelCost:              res.TotalFuelCost,
		AverageDeliveryTimeMinutes: res.AverageDeliveryTimeMinutes,
		DriverUtilization:          make([]dto.DriverUtilizationResponse, 0, len(res.DriverUtilization)),
		HourlyPerformance:          make([]dto.HourlyPerformanceResponse, 0, len(res.HourlyPerformance)),
	}
	for _, u := range res.DriverUtilization {
		out.DriverUtilization = append(out.DriverUtilization, dto.DriverUtilizationResponse{
			DriverID:    u.DriverID,
			Driver:      u.Driver,
			Utilization: u.Utilization,
		})
	}
	for _, p := range res.HourlyPerformance {
		out.HourlyPerformance = append(out.HourlyPerformance, dto.HourlyPerformanceResponse{
			Hour:       p.Hour,
			Deliveries: p.Deliveries,
			Efficiency: p.Efficiency,
		})
	}
	return out
}

// History lists saved runs, newest first.
func (h *SimulationHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	limit, ok := queryInt(q.Get("limit"), DefaultHistoryLimit)
	if !ok || limit < 1 || limit > MaxHistoryLimit {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}
	offset, ok := queryInt(q.Get("offset"), 0)
	if !ok || offset < 0 {
		writeError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	entries, err := services.ListSimulationHistory(r.Context(), h.Results, limit, offset)
	if err != nil {
		log.Printf("list simulation history failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSimulationHistoryResponse{
		Simulations: make([]dto.SimulationHistoryEntry, 0, len(entries)),
		Limit:       limit,
		Offset:      offset,
	}
	for _, e := range entries {
		res.Simulations = append(res.Simulations, dto.SimulationHistoryEntry{
			ID:                         e.ID,
			Timestamp:                  e.Timestamp,
			DriverCount:                e.DriverCount,
			StartTime:                  e.StartTime,
			MaxHoursPerDay:             e.MaxHoursPerDay,
			TotalProfit:                e.TotalProfit,
			EfficiencyScore:            e.EfficiencyScore,
			OnTimeDeliveries:           e.OnTimeCount,
			LateDeliveries:             e.LateCount,
			TotalFuelCost:              e.TotalFuelCost,
			AverageDeliveryTimeMinutes: e.AverageDeliveryTimeMinutes,
			AverageUtilization:         e.AverageUtilization,
			AverageHourlyDeliveries:    e.AverageHourlyDeliveries,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
