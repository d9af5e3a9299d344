package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkbill/internal/models"
)

// ErrProfileNotFound indicates the facility has no rate profile registered.
var ErrProfileNotFound = errors.New("rate profile not found")

// RateProfileRepository reads facility tariff schedules.
type RateProfileRepository struct {
	db *sql.DB
}

// NewRateProfileRepository returns repository.
func NewRateProfileRepository(db *sql.DB) *RateProfileRepository {
	return &RateProfileRepository{db: db}
}

// GetByFacility assembles the facility's weekday/weekend tariff lists.
// The profile is validated against the coverage invariant before it is
// handed out, so a misconfigured schedule fails here rather than mid-pricing.
func (r *RateProfileRepository) GetByFacility(ctx context.Context, facilityID string) (*models.RateProfile, error) {
	const query = `
		SELECT day_class, start_hour, end_hour, price_per_hour
		FROM tariff_entries
		WHERE facility_id = $1
		ORDER BY day_class, start_hour
	`
	rows, err := r.db.QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profile := &models.RateProfile{FacilityID: facilityID}
	for rows.Next() {
		var dayClass string
		var entry models.TariffEntry
		if err := rows.Scan(&dayClass, &entry.StartHour, &entry.EndHour, &entry.PricePerHour); err != nil {
			return nil, err
		}
		switch dayClass {
		case "weekday":
			profile.Weekday = append(profile.Weekday, entry)
		case "weekend":
			profile.Weekend = append(profile.Weekend, entry)
		default:
			return nil, fmt.Errorf("facility %q: unknown day class %q", facilityID, dayClass)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(profile.Weekday) == 0 && len(profile.Weekend) == 0 {
		return nil, ErrProfileNotFound
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}
