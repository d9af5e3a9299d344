package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"parkbill/internal/models"
)

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestCalculateAcceptanceScenarios(t *testing.T) {
	// 2025-04-24 is a Thursday, 2025-04-20 a Sunday.
	profile := referenceProfile()
	calc := NewSessionCostCalculator(zap.NewNop())

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "one night segment",
			start: utc(2025, time.April, 24, 0, 1),
			end:   utc(2025, time.April, 24, 1, 1),
			want:  "0.50",
		},
		{
			name:  "one daytime segment",
			start: utc(2025, time.April, 24, 10, 1),
			end:   utc(2025, time.April, 24, 11, 1),
			want:  "2.50",
		},
		{
			name:  "one evening segment",
			start: utc(2025, time.April, 24, 20, 1),
			end:   utc(2025, time.April, 24, 21, 1),
			want:  "1.50",
		},
		{
			name:  "two morning segments",
			start: utc(2025, time.April, 24, 6, 1),
			end:   utc(2025, time.April, 24, 8, 1),
			want:  "3.00",
		},
		{
			name:  "ten hours from midnight",
			start: utc(2025, time.April, 24, 0, 1),
			end:   utc(2025, time.April, 24, 10, 1),
			want:  "11.00",
		},
		{
			name:  "full weekday",
			start: utc(2025, time.April, 24, 0, 1),
			end:   utc(2025, time.April, 25, 0, 1),
			want:  "40.00",
		},
		{
			name:  "full weekend day",
			start: utc(2025, time.April, 20, 0, 1),
			end:   utc(2025, time.April, 21, 0, 1),
			want:  "47.20",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := models.Session{
				ID:         1,
				CustomerID: "cust-1",
				FacilityID: "garage-1",
				StartTime:  tc.start,
				EndTime:    tc.end,
			}
			amount, err := calc.Calculate(session, profile)
			if err != nil {
				t.Fatalf("calculate: %v", err)
			}
			if !amount.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, amount)
			}
		})
	}
}

func TestCalculateBillsTrailingPartialSegmentInFull(t *testing.T) {
	calc := NewSessionCostCalculator(zap.NewNop())
	session := models.Session{
		ID:         2,
		CustomerID: "cust-1",
		FacilityID: "garage-1",
		StartTime:  utc(2025, time.April, 24, 10, 1),
		EndTime:    utc(2025, time.April, 24, 11, 31),
	}

	// 90 minutes means two anchored segments, both charged a whole hour.
	amount, err := calc.Calculate(session, referenceProfile())
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected 5.00, got %s", amount)
	}
}

func TestCalculateSegmentsAreAnchoredAtStart(t *testing.T) {
	calc := NewSessionCostCalculator(zap.NewNop())
	// 05:30 to 06:30 is a single segment priced at hour 5, even though it
	// crosses the 06:00 tariff boundary on the clock.
	session := models.Session{
		ID:         3,
		CustomerID: "cust-1",
		FacilityID: "garage-1",
		StartTime:  utc(2025, time.April, 24, 5, 30),
		EndTime:    utc(2025, time.April, 24, 6, 30),
	}

	amount, err := calc.Calculate(session, referenceProfile())
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("0.50")) {
		t.Fatalf("expected 0.50, got %s", amount)
	}
}

func TestCalculateSwitchesTariffAtWeekendBoundary(t *testing.T) {
	calc := NewSessionCostCalculator(zap.NewNop())
	// 2025-04-25 is a Friday: first segment prices as weekday hour 23,
	// second as Saturday hour 0.
	session := models.Session{
		ID:         4,
		CustomerID: "cust-1",
		FacilityID: "garage-1",
		StartTime:  utc(2025, time.April, 25, 23, 30),
		EndTime:    utc(2025, time.April, 26, 1, 30),
	}

	amount, err := calc.Calculate(session, referenceProfile())
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("expected 2.50, got %s", amount)
	}
}

func TestCalculateNonPositiveDurationChargesZero(t *testing.T) {
	calc := NewSessionCostCalculator(zap.NewNop())
	profile := referenceProfile()

	for _, end := range []time.Time{
		utc(2025, time.April, 24, 10, 0),
		utc(2025, time.April, 24, 9, 0),
	} {
		session := models.Session{
			ID:         5,
			CustomerID: "cust-1",
			FacilityID: "garage-1",
			StartTime:  utc(2025, time.April, 24, 10, 0),
			EndTime:    end,
		}
		amount, err := calc.Calculate(session, profile)
		if err != nil {
			t.Fatalf("calculate: %v", err)
		}
		if !amount.IsZero() {
			t.Fatalf("expected zero charge, got %s", amount)
		}
	}
}

func TestCalculatePropagatesCoverageError(t *testing.T) {
	calc := NewSessionCostCalculator(zap.NewNop())
	profile := &models.RateProfile{
		FacilityID: "garage-1",
		Weekday: []models.TariffEntry{
			tariff(0, 9, "1.00"),
			tariff(10, 24, "2.00"),
		},
		Weekend: []models.TariffEntry{tariff(0, 24, "1.00")},
	}
	session := models.Session{
		ID:         6,
		CustomerID: "cust-1",
		FacilityID: "garage-1",
		StartTime:  utc(2025, time.April, 24, 8, 30),
		EndTime:    utc(2025, time.April, 24, 11, 30),
	}

	_, err := calc.Calculate(session, profile)
	var coverage *ScheduleCoverageError
	if !errors.As(err, &coverage) {
		t.Fatalf("expected ScheduleCoverageError, got %v", err)
	}
	if coverage.Hour != 9 {
		t.Errorf("expected hour 9 in error, got %d", coverage.Hour)
	}
}
