package service

import (
	"time"

	"github.com/shopspring/decimal"

	"parkbill/internal/models"
)

const (
	dayClassWeekday = "weekday"
	dayClassWeekend = "weekend"
)

// ResolveRate returns the hourly price in effect for the given day of week
// and hour of day. The weekday or weekend list is picked by day class; within
// the list, the first entry whose [StartHour, EndHour) contains the hour wins.
// A miss means the schedule violates the coverage invariant and yields a
// ScheduleCoverageError.
func ResolveRate(day time.Weekday, hour int, profile *models.RateProfile) (decimal.Decimal, error) {
	entries := profile.Weekday
	class := dayClassWeekday
	if models.IsWeekend(day) {
		entries = profile.Weekend
		class = dayClassWeekend
	}

	for _, entry := range entries {
		if entry.Contains(hour) {
			return entry.PricePerHour, nil
		}
	}

	return decimal.Zero, &ScheduleCoverageError{
		FacilityID: profile.FacilityID,
		DayClass:   class,
		Hour:       hour,
	}
}
