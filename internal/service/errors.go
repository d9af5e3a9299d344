package service

import "fmt"

// UnknownFacilityError is returned when no rate profile is registered for
// the requested facility.
type UnknownFacilityError struct {
	FacilityID string
}

func (e *UnknownFacilityError) Error() string {
	return fmt.Sprintf("unknown facility %q", e.FacilityID)
}

// ScheduleCoverageError is returned when a tariff list has no entry for an
// hour that needs pricing. It always names the exact gap so schedule
// misconfiguration is diagnosable from the error alone.
type ScheduleCoverageError struct {
	FacilityID string
	DayClass   string
	Hour       int
}

func (e *ScheduleCoverageError) Error() string {
	return fmt.Sprintf("facility %q: %s schedule has no tariff entry for hour %d", e.FacilityID, e.DayClass, e.Hour)
}
