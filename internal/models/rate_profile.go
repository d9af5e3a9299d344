package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TariffEntry maps an hour range [StartHour, EndHour) to an hourly price.
type TariffEntry struct {
	StartHour    int             `db:"start_hour" json:"start_hour"`
	EndHour      int             `db:"end_hour" json:"end_hour"`
	PricePerHour decimal.Decimal `db:"price_per_hour" json:"price_per_hour"`
}

// Contains reports whether the entry covers the given hour of day.
func (e TariffEntry) Contains(hour int) bool {
	return hour >= e.StartHour && hour < e.EndHour
}

// RateProfile holds one facility's weekday and weekend tariff lists.
// Each list is expected to cover hours 0..23 without gaps or overlaps.
type RateProfile struct {
	FacilityID string        `json:"facility_id"`
	Weekday    []TariffEntry `json:"weekday"`
	Weekend    []TariffEntry `json:"weekend"`
}

// IsWeekend classifies the day the way the tariff tables do.
func IsWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

// Validate checks the coverage invariant on both tariff lists: every entry
// well-formed, prices non-negative, and hours 0..23 covered exactly once.
// Profiles are validated when loaded so a defective schedule is rejected
// before any session is priced against it.
func (p *RateProfile) Validate() error {
	if err := validateTariffList("weekday", p.Weekday); err != nil {
		return fmt.Errorf("facility %q: %w", p.FacilityID, err)
	}
	if err := validateTariffList("weekend", p.Weekend); err != nil {
		return fmt.Errorf("facility %q: %w", p.FacilityID, err)
	}
	return nil
}

func validateTariffList(class string, entries []TariffEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%s schedule is empty", class)
	}

	sorted := make([]TariffEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartHour < sorted[j].StartHour })

	next := 0
	for _, entry := range sorted {
		if entry.StartHour < 0 || entry.EndHour > 24 || entry.StartHour >= entry.EndHour {
			return fmt.Errorf("%s schedule has malformed entry [%d, %d)", class, entry.StartHour, entry.EndHour)
		}
		if entry.PricePerHour.IsNegative() {
			return fmt.Errorf("%s schedule has negative price for [%d, %d)", class, entry.StartHour, entry.EndHour)
		}
		if entry.StartHour > next {
			return fmt.Errorf("%s schedule has no entry for hours [%d, %d)", class, next, entry.StartHour)
		}
		if entry.StartHour < next {
			return fmt.Errorf("%s schedule entries overlap at hour %d", class, entry.StartHour)
		}
		next = entry.EndHour
	}
	if next < 24 {
		return fmt.Errorf("%s schedule has no entry for hours [%d, 24)", class, next)
	}
	return nil
}
