package handlers

import (
	"delivery-simulation-service/internal/api/dto"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// FleetHandler manages the drivers, routes and orders a simulation runs on.
type FleetHandler struct {
	Fleet *services.FleetService
}

// Drivers serves /drivers.
func (h *FleetHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListDrivers(w, r)
	case http.MethodPost:
		h.CreateDriver(w, r)
	default:
		methodNotAllowed(w, r, collectionMethods)
	}
}

// Driver serves /drivers/{id}.
func (h *FleetHandler) Driver(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetDriver(w, r)
	case http.MethodPut:
		h.UpdateDriver(w, r)
	case http.MethodDelete:
		h.DeleteDriver(w, r)
	default:
		methodNotAllowed(w, r, itemMethods)
	}
}

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Fleet.ListDrivers(r.Context())
	if err != nil {
		writeRecordError(w, r, "drivers", "", err)
		return
	}

	res := dto.ListDriversResponse{Drivers: make([]dto.DriverResponse, 0, len(drivers))}
	for _, d := range drivers {
		res.Drivers = append(res.Drivers, driverResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d, err := h.Fleet.GetDriver(r.Context(), id)
	if err != nil {
		writeRecordError(w, r, "driver", id, err)
		return
	}
	writeJSON(w, r, http.StatusOK, driverResponse(d))
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.Fleet.CreateDriver(r.Context(), driverFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "driver", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, driverResponse(d))
}

func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = r.PathValue("id")

	d, err := h.Fleet.UpdateDriver(r.Context(), driverFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "driver", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusOK, driverResponse(d))
}

func (h *FleetHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Fleet.DeleteDriver(r.Context(), id); err != nil {
		writeRecordError(w, r, "driver", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Routes serves /routes.
func (h *FleetHandler) Routes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListRoutes(w, r)
	case http.MethodPost:
		h.CreateRoute(w, r)
	default:
		methodNotAllowed(w, r, collectionMethods)
	}
}

// Route serves /routes/{id}.
func (h *FleetHandler) Route(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetRoute(w, r)
	case http.MethodPut:
		h.UpdateRoute(w, r)
	case http.MethodDelete:
		h.DeleteRoute(w, r)
	default:
		methodNotAllowed(w, r, itemMethods)
	}
}

func (h *FleetHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Fleet.ListRoutes(r.Context())
	if err != nil {
		writeRecordError(w, r, "routes", "", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, routeResponse(rt))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *FleetHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rt, err := h.Fleet.GetRoute(r.Context(), id)
	if err != nil {
		writeRecordError(w, r, "route", id, err)
		return
	}
	writeJSON(w, r, http.StatusOK, routeResponse(rt))
}

func (h *FleetHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rt, err := h.Fleet.CreateRoute(r.Context(), routeFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "route", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, routeResponse(rt))
}

func (h *FleetHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = r.PathValue("id")

	rt, err := h.Fleet.UpdateRoute(r.Context(), routeFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "route", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusOK, routeResponse(rt))
}

func (h *FleetHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Fleet.DeleteRoute(r.Context(), id); err != nil {
		writeRecordError(w, r, "route", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Orders serves /orders.
func (h *FleetHandler) Orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListOrders(w, r)
	case http.MethodPost:
		h.CreateOrder(w, r)
	default:
		methodNotAllowed(w, r, collectionMethods)
	}
}

// Order serves /orders/{id}.
func (h *FleetHandler) Order(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetOrder(w, r)
	case http.MethodPut:
		h.UpdateOrder(w, r)
	case http.MethodDelete:
		h.DeleteOrder(w, r)
	default:
		methodNotAllowed(w, r, itemMethods)
	}
}

// ListOrders returns all orders, narrowed by ?status= and ?priority= when given.
func (h *FleetHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filter ports.OrderFilter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		st, ok := domain.ParseOrderStatus(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "status must be one of pending, assigned, delivered, cancelled")
			return
		}
		filter.Status = st
	}
	if raw := q.Get("priority"); raw != "" {
		p, ok := domain.ParsePriority(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "priority must be one of urgent, high, normal, low")
			return
		}
		filter.Priority = p
	}

	orders, err := h.Fleet.ListOrders(r.Context(), filter)
	if err != nil {
		writeRecordError(w, r, "orders", "", err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, orderResponse(o))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *FleetHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	o, err := h.Fleet.GetOrder(r.Context(), id)
	if err != nil {
		writeRecordError(w, r, "order", id, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orderResponse(o))
}

func (h *FleetHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.Fleet.CreateOrder(r.Context(), orderFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "order", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, orderResponse(o))
}

func (h *FleetHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = r.PathValue("id")

	o, err := h.Fleet.UpdateOrder(r.Context(), orderFromRequest(req))
	if err != nil {
		writeRecordError(w, r, "order", req.ID, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orderResponse(o))
}

func (h *FleetHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Fleet.DeleteOrder(r.Context(), id); err != nil {
		writeRecordError(w, r, "order", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeRecordError maps fleet errors to statuses. Not-found names the missing
// record, which for an order may be its route.
func writeRecordError(w http.ResponseWriter, r *http.Request, kind, id string, err error) {
	var missing *domain.NotFoundError

	switch {
	case errors.As(err, &missing):
		writeError(w, r, http.StatusNotFound, missing.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("%s %s not found", kind, id))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, http.StatusConflict, fmt.Sprintf("%s %s already exists", kind, id))
	case errors.Is(err, domain.ErrInvalidRecord):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInUse):
		msg := fmt.Sprintf("%s %s is still referenced by orders", kind, id)
		if kind == "order" {
			msg = fmt.Sprintf("order %s is in progress", id)
		}
		writeError(w, r, http.StatusBadRequest, msg)
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Printf("%s request failed: %v", kind, err)
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		log.Printf("%s request failed: %v", kind, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func driverFromRequest(req dto.DriverRequest) domain.Driver {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return domain.Driver{ID: req.ID, Name: req.Name, MaxHoursPerDay: req.MaxHoursPerDay, IsActive: active}
}

func driverResponse(d domain.Driver) dto.DriverResponse {
	return dto.DriverResponse{
		ID:             d.ID,
		Name:           d.DisplayName(),
		MaxHoursPerDay: d.MaxHoursPerDay,
		IsActive:       d.IsActive,
	}
}

func routeFromRequest(req dto.RouteRequest) domain.Route {
	return domain.Route{
		ID:                   req.ID,
		Name:                 req.Name,
		StartLocation:        req.StartLocation,
		EndLocation:          req.EndLocation,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
		Distance:             req.Distance,
		FuelCostRate:         req.FuelCostRate,
	}
}

func routeResponse(rt domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:                   rt.ID,
		Name:                 rt.Name,
		StartLocation:        rt.StartLocation,
		EndLocation:          rt.EndLocation,
		EstimatedTimeMinutes: rt.EstimatedTimeMinutes,
		Distance:             rt.Distance,
		FuelCostRate:         rt.FuelCostRate,
	}
}

func orderFromRequest(req dto.OrderRequest) domain.Order {
	o := domain.Order{
		ID:         req.ID,
		OrderValue: req.OrderValue,
		Priority:   domain.Priority(req.Priority),
		Status:     domain.OrderStatus(req.Status),
	}
	if req.RouteID != nil {
		o.RouteID = *req.RouteID
	}
	return o
}

func orderResponse(o domain.Order) dto.OrderResponse {
	item := dto.OrderResponse{
		ID:         o.ID,
		OrderValue: o.OrderValue,
		Priority:   string(o.Priority),
		Status:     string(o.Status),
	}
	if o.RouteID != "" {
		routeID := o.RouteID
		item.RouteID = &routeID
	}
	return item
}
