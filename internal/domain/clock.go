package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Wall-clock hour and minute of a simulated shift start.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime accepts "H:MM" or "HH:MM" in 24-hour time.
func ParseClockTime(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: hour must be 0-23", s)
	}

	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: minute must be 00-59", s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// AddHours returns the clock time n whole hours later, wrapping past midnight.
func (c ClockTime) AddHours(n int) ClockTime {
	return ClockTime{Hour: ((c.Hour+n)%24 + 24) % 24, Minute: c.Minute}
}
