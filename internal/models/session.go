package models

import "time"

// Session represents a completed parking session.
// Times are stored and priced in UTC.
type Session struct {
	ID         int64     `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	FacilityID string    `db:"facility_id" json:"facility_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
