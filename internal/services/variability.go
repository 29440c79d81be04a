package services

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniform draws in [0, 1).
// Every randomized factor in a run draws from the same source, so a seeded
// or fixed source reproduces a run exactly.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic generator for the given seed.
func NewSeededSource(seed int64) RandomSource {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewTimeSeededSource is the production source.
func NewTimeSeededSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}

// MidpointSource always draws 0.5, holding every factor at the middle of its range.
type MidpointSource struct{}

func (MidpointSource) Float64() float64 { return 0.5 }

// SequenceSource replays fixed draws in order, then repeats the last one.
type SequenceSource struct {
	Values []float64
	next   int
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	if s.next >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	v := s.Values[s.next]
	s.next++
	return v
}

// FactorRange is a closed interval a variability factor is drawn from.
type FactorRange struct {
	Min float64
	Max float64
}

func (f FactorRange) Draw(r RandomSource) float64 {
	return f.Min + r.Float64()*(f.Max-f.Min)
}

func (f FactorRange) Midpoint() float64 { return (f.Min + f.Max) / 2 }

// Delivery-level factors.
var (
	TrafficFactor      = FactorRange{Min: 0.80, Max: 1.20}
	WeatherFactor      = FactorRange{Min: 0.90, Max: 1.10}
	DriverSkillFactor  = FactorRange{Min: 0.85, Max: 1.15}
	RouteDetourFactor  = FactorRange{Min: 0.95, Max: 1.05}
	FuelPriceFactor    = FactorRange{Min: 0.90, Max: 1.10}
	MarketMarginFactor = FactorRange{Min: 0.95, Max: 1.05}
)

// Fleet-level factors.
var (
	EfficiencyBaseFactor     = FactorRange{Min: 0.98, Max: 1.02}
	TeamPerformanceFactor    = FactorRange{Min: 0.95, Max: 1.05}
	ExternalConditionsFactor = FactorRange{Min: 0.97, Max: 1.03}
	DriverPerformanceFactor  = FactorRange{Min: 0.90, Max: 1.10}
	DailyConditionsFactor    = FactorRange{Min: 0.95, Max: 1.05}
	HourlyVolumeJitter       = FactorRange{Min: 0.80, Max: 1.20}
	HourlyEfficiencyBase     = FactorRange{Min: 80, Max: 100}
)
