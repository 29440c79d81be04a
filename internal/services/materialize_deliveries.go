package services

import (
	"delivery-simulation-service/internal/domain"
	"math"
)

const (
	// Orders projected past this many minutes are late.
	DeliveryWindowMinutes = 120.0

	BaseMarginRate = 0.15

	// Late penalty fraction grows with lateness relative to the window, capped.
	LatePenaltyBaseRate  = 0.10
	LatePenaltySlopeRate = 0.10
	LatePenaltyMaxRate   = 0.50

	HighValueThreshold = 1000.0
	HighValueBonusRate = 0.05

	UrgentPriorityBonusRate = 0.03
	HighPriorityBonusRate   = 0.02

	SatisfactionBonusChance = 0.10
	SatisfactionBonusRate   = 0.01
)

// Materializer turns pending orders into projected deliveries.
type Materializer struct {
	Random RandomSource
}

// MaterializeDeliveries produces one Delivery per order that resolves to a route.
// Orders naming an unknown or empty route fall back to the first route;
// with no routes at all every order is skipped.
func (m *Materializer) MaterializeDeliveries(orders []domain.Order, routes []domain.Route) []*domain.Delivery {
	if len(routes) == 0 {
		return []*domain.Delivery{}
	}

	byID := make(map[string]domain.Route, len(routes))
	for _, r := range routes {
		byID[r.ID] = r
	}

	deliveries := make([]*domain.Delivery, 0, len(orders))
	for _, o := range orders {
		route, ok := byID[o.RouteID]
		if !ok {
			route = routes[0]
		}
		deliveries = append(deliveries, m.Materialize(o, route))
	}

	return deliveries
}

// Materialize projects a single order over a route. Factor draws happen in a
// fixed order: traffic, weather, driver skill, detour, fuel price, market
// margin, customer satisfaction.
func (m *Materializer) Materialize(order domain.Order, route domain.Route) *domain.Delivery {
	r := m.Random

	projectedTime := route.EstimatedTimeMinutes *
		TrafficFactor.Draw(r) *
		WeatherFactor.Draw(r) *
		DriverSkillFactor.Draw(r)

	distance := route.Distance * RouteDetourFactor.Draw(r)
	fuelCost := route.FuelCostRate * distance * FuelPriceFactor.Draw(r)

	isLate := projectedTime > DeliveryWindowMinutes

	value := order.OrderValue
	profit := value * BaseMarginRate * MarketMarginFactor.Draw(r)

	if isLate {
		profit -= value * LatePenaltyRate(projectedTime)
	}

	if value > HighValueThreshold {
		profit += value * HighValueBonusRate
	}

	switch order.Priority {
	case domain.PriorityUrgent:
		profit += value * UrgentPriorityBonusRate
	case domain.PriorityHigh:
		profit += value * HighPriorityBonusRate
	}

	if r.Float64() < SatisfactionBonusChance && !isLate {
		profit += value * SatisfactionBonusRate
	}

	return &domain.Delivery{
		OrderID:              order.ID,
		RouteID:              route.ID,
		OrderValue:           value,
		Priority:             order.Priority,
		ProjectedTimeMinutes: projectedTime,
		ProjectedDistance:    distance,
		FuelCost:             fuelCost,
		IsLate:               isLate,
		Profit:               math.Max(0, profit),
	}
}

// LatePenaltyRate is the fraction of order value deducted for a delivery
// projected to take the given minutes. Zero inside the window.
func LatePenaltyRate(projectedMinutes float64) float64 {
	late := projectedMinutes - DeliveryWindowMinutes
	if late <= 0 {
		return 0
	}
	return math.Min(LatePenaltyMaxRate, LatePenaltyBaseRate+LatePenaltySlopeRate*late/DeliveryWindowMinutes)
}
