package services

import "testing"

func TestFactorRangeDrawBounds(t *testing.T) {
	src := NewSeededSource(7)
	for i := 0; i < 1000; i++ {
		v := TrafficFactor.Draw(src)
		if v < TrafficFactor.Min || v > TrafficFactor.Max {
			t.Fatalf("draw %d = %v outside [%v, %v]", i, v, TrafficFactor.Min, TrafficFactor.Max)
		}
	}
}

func TestMidpointSourceHoldsFactorsNeutral(t *testing.T) {
	neutral := []FactorRange{
		TrafficFactor, WeatherFactor, DriverSkillFactor, RouteDetourFactor,
		FuelPriceFactor, MarketMarginFactor, EfficiencyBaseFactor, TeamPerformanceFactor,
		ExternalConditionsFactor, DriverPerformanceFactor, DailyConditionsFactor, HourlyVolumeJitter,
	}
	for _, f := range neutral {
		if !approxEqual(f.Midpoint(), 1) {
			t.Errorf("midpoint of %+v = %v, want 1", f, f.Midpoint())
		}
		if got := f.Draw(MidpointSource{}); !approxEqual(got, f.Midpoint()) {
			t.Errorf("midpoint draw of %+v = %v, want %v", f, got, f.Midpoint())
		}
	}

	hourly := FactorRange{Min: 80, Max: 100}
	if got := hourly.Draw(MidpointSource{}); got != hourly.Midpoint() || got != 90 {
		t.Fatalf("hourly efficiency midpoint draw = %v, want 90", got)
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a, b := NewSeededSource(42), NewSeededSource(42)
	for i := 0; i < 10; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestSequenceSourceRepeatsLast(t *testing.T) {
	s := &SequenceSource{Values: []float64{0.1, 0.9}}
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	want := []float64{0.1, 0.9, 0.9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
