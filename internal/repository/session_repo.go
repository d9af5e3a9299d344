package repository

import (
	"context"
	"database/sql"

	"parkbill/internal/models"
)

// SessionRepository reads completed parking sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// ListByFacility returns all sessions recorded at the facility, oldest first.
// An unknown facility simply has no rows; callers get an empty slice.
func (r *SessionRepository) ListByFacility(ctx context.Context, facilityID string) ([]models.Session, error) {
	const query = `
		SELECT id, customer_id, facility_id, start_time, end_time, created_at
		FROM parking_sessions
		WHERE facility_id = $1
		ORDER BY start_time, id
	`
	rows, err := r.db.QueryContext(ctx, query, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.ID,
			&s.CustomerID,
			&s.FacilityID,
			&s.StartTime,
			&s.EndTime,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
