package services

import (
	"delivery-simulation-service/internal/domain"
	"math"
)

// Efficiency score weights. The order in which they are applied is kept as-is
// for compatibility with recorded history: additive adjustments first, then
// the two multiplicative factors, then the clamp.
const (
	EfficiencyBase            = 100.0
	UnassignedPenaltyWeight   = 30.0
	LatePenaltyWeight         = 20.0
	MaxLateSeverity           = 2.0
	HighValueBonusWeight      = 10.0
	MaxHourlyPerformanceHours = 12
)

// Hourly curve shape.
const (
	RushHourVolumeMultiplier = 1.3
	LunchVolumeMultiplier    = 0.8
	TaperVolumeMultiplier    = 0.7
	TaperHours               = 2
	FatigueOnsetHours        = 6
	FatiguePenaltyPerHour    = 2.0
	RushHourEfficiencyLoss   = 5.0
	MinHourlyEfficiency      = 50.0
	MaxHourlyEfficiency      = 100.0
)

type hourBand struct{ from, to int }

var (
	rushHourBands = []hourBand{{from: 7, to: 10}, {from: 16, to: 19}}
	lunchBand     = hourBand{from: 12, to: 14}
)

func (b hourBand) contains(hour int) bool { return hour >= b.from && hour < b.to }

// Aggregator rolls the final delivery set up into fleet KPIs.
// Draw order: efficiency base, team performance, external conditions, daily
// conditions, one driver performance per workload, then per hour a volume
// jitter and an efficiency base.
type Aggregator struct {
	Random RandomSource
}

func (a *Aggregator) Aggregate(
	deliveries []*domain.Delivery,
	workloads []*domain.DriverWorkload,
	params domain.SimulationParameters,
) domain.SimulationResult {
	var res domain.SimulationResult

	var totalTime, lateMinutes float64
	highValue := 0
	for _, d := range deliveries {
		res.TotalProfit += d.Profit
		res.TotalFuelCost += d.FuelCost
		totalTime += d.ProjectedTimeMinutes

		if d.IsLate {
			res.LateCount++
			lateMinutes += d.ProjectedTimeMinutes - DeliveryWindowMinutes
		} else {
			res.OnTimeCount++
		}

		if d.Assigned() {
			res.AssignedCount++
		} else {
			res.UnassignedCount++
		}

		if d.OrderValue > HighValueThreshold {
			highValue++
		}
	}

	if n := len(deliveries); n > 0 {
		res.AverageDeliveryTimeMinutes = totalTime / float64(n)
	}

	avgLateMinutes := 0.0
	if res.LateCount > 0 {
		avgLateMinutes = lateMinutes / float64(res.LateCount)
	}

	res.EfficiencyScore = a.efficiencyScore(len(deliveries), res.UnassignedCount, res.LateCount, highValue, avgLateMinutes)
	res.DriverUtilization = a.driverUtilization(workloads, params.MaxHoursPerDay)
	res.HourlyPerformance = a.hourlyPerformance(len(deliveries), params)

	return res
}

func (a *Aggregator) efficiencyScore(total, unassigned, late, highValue int, avgLateMinutes float64) float64 {
	score := EfficiencyBase * EfficiencyBaseFactor.Draw(a.Random)

	if total > 0 {
		n := float64(total)

		score -= float64(unassigned) / n * UnassignedPenaltyWeight

		severity := math.Min(MaxLateSeverity, 1+avgLateMinutes/DeliveryWindowMinutes)
		score -= float64(late) / n * LatePenaltyWeight * severity

		score += float64(highValue) / n * HighValueBonusWeight
	}

	score *= TeamPerformanceFactor.Draw(a.Random)
	score *= ExternalConditionsFactor.Draw(a.Random)

	return clamp(score, 0, 100)
}

func (a *Aggregator) driverUtilization(workloads []*domain.DriverWorkload, maxHoursPerDay float64) []domain.DriverUtilization {
	daily := DailyConditionsFactor.Draw(a.Random)

	out := make([]domain.DriverUtilization, 0, len(workloads))
	for _, w := range workloads {
		u := w.HoursUsed / maxHoursPerDay * 100
		u *= DriverPerformanceFactor.Draw(a.Random)
		u *= daily

		out = append(out, domain.DriverUtilization{
			DriverID:    w.Driver.ID,
			Driver:      w.Driver.DisplayName(),
			Utilization: int(math.Round(clamp(u, 0, 100))),
		})
	}
	return out
}

// WorkingHours is the number of hourly performance entries for a cap.
func WorkingHours(maxHoursPerDay float64) int {
	return int(math.Ceil(math.Min(MaxHourlyPerformanceHours, maxHoursPerDay)))
}

func (a *Aggregator) hourlyPerformance(totalDeliveries int, params domain.SimulationParameters) []domain.HourlyPerformance {
	hours := WorkingHours(params.MaxHoursPerDay)
	if hours <= 0 {
		return []domain.HourlyPerformance{}
	}

	perHour := float64(totalDeliveries) / float64(hours)

	out := make([]domain.HourlyPerformance, 0, hours)
	for i := 0; i < hours; i++ {
		clock := params.StartTime.AddHours(i)
		rush := inRushHour(clock.Hour)

		volume := 1.0
		if rush {
			volume *= RushHourVolumeMultiplier
		}
		if lunchBand.contains(clock.Hour) {
			volume *= LunchVolumeMultiplier
		}
		if hours > TaperHours && i >= hours-TaperHours {
			volume *= TaperVolumeMultiplier
		}
		count := math.Round(perHour * volume * HourlyVolumeJitter.Draw(a.Random))

		eff := HourlyEfficiencyBase.Draw(a.Random)
		if elapsed := i + 1; elapsed > FatigueOnsetHours {
			eff -= FatiguePenaltyPerHour * float64(elapsed-FatigueOnsetHours)
		}
		if rush {
			eff -= RushHourEfficiencyLoss
		}

		out = append(out, domain.HourlyPerformance{
			Hour:       clock.String(),
			Deliveries: int(math.Max(0, count)),
			Efficiency: int(math.Round(clamp(eff, MinHourlyEfficiency, MaxHourlyEfficiency))),
		})
	}
	return out
}

func inRushHour(hour int) bool {
	for _, b := range rushHourBands {
		if b.contains(hour) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
