package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"parkbill/internal/models"
)

// segmentWidth is the fixed billing granularity. Segments are anchored at
// the session's start instant, not at clock-hour boundaries, and every
// segment is billed in full: a trailing partial segment costs the same as
// a whole one.
const segmentWidth = time.Hour

// SessionCostCalculator prices one session against a facility's rate profile.
type SessionCostCalculator struct {
	logger *zap.Logger
}

// NewSessionCostCalculator returns calculator.
func NewSessionCostCalculator(logger *zap.Logger) *SessionCostCalculator {
	return &SessionCostCalculator{logger: logger}
}

// Calculate returns the total charge for the session. The session is split
// into consecutive segments of segmentWidth starting at StartTime; each
// segment is billed one full hour at the tariff in effect at the segment's
// start instant (UTC). A session that ends at or before its start is a data
// defect: it is charged zero and logged, not failed.
func (c *SessionCostCalculator) Calculate(session models.Session, profile *models.RateProfile) (decimal.Decimal, error) {
	start := session.StartTime.UTC()
	end := session.EndTime.UTC()

	if !end.After(start) {
		c.logger.Warn("session has non-positive duration, charging zero",
			zap.Int64("session_id", session.ID),
			zap.String("customer_id", session.CustomerID),
			zap.String("facility_id", session.FacilityID),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for cursor := start; cursor.Before(end); cursor = cursor.Add(segmentWidth) {
		price, err := ResolveRate(cursor.Weekday(), cursor.Hour(), profile)
		if err != nil {
			return decimal.Zero, fmt.Errorf("session %d: %w", session.ID, err)
		}
		total = total.Add(price)
	}
	return total, nil
}
