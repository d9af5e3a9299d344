package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	httpserver "parkbill/internal/http"
	"parkbill/internal/http/handlers"
	"parkbill/internal/http/middleware"
	"parkbill/internal/models"
	"parkbill/internal/repository"
	"parkbill/internal/service"
)

type stubSessions struct {
	sessions []models.Session
}

func (s *stubSessions) ListByFacility(ctx context.Context, facilityID string) ([]models.Session, error) {
	out := make([]models.Session, 0)
	for _, sess := range s.sessions {
		if sess.FacilityID == facilityID {
			out = append(out, sess)
		}
	}
	return out, nil
}

type stubProfiles struct {
	profiles map[string]*models.RateProfile
}

func (s *stubProfiles) GetByFacility(ctx context.Context, facilityID string) (*models.RateProfile, error) {
	profile, ok := s.profiles[facilityID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return profile, nil
}

type stubCustomers struct{}

func (stubCustomers) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	return nil, repository.ErrCustomerNotFound
}

func flatProfile(facilityID string) *models.RateProfile {
	full := func(price string) []models.TariffEntry {
		return []models.TariffEntry{{StartHour: 0, EndHour: 24, PricePerHour: decimal.RequireFromString(price)}}
	}
	return &models.RateProfile{FacilityID: facilityID, Weekday: full("2.00"), Weekend: full("3.00")}
}

func newTestRouter(t *testing.T, auth func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	sessions := &stubSessions{sessions: []models.Session{
		{
			ID:         1,
			CustomerID: "cust-1",
			FacilityID: "garage-1",
			StartTime:  time.Date(2025, time.April, 24, 9, 15, 0, 0, time.UTC),
			EndTime:    time.Date(2025, time.April, 24, 11, 15, 0, 0, time.UTC),
		},
	}}
	profiles := &stubProfiles{profiles: map[string]*models.RateProfile{
		"garage-1": flatProfile("garage-1"),
	}}
	policy, err := service.NewCustomerPolicy(service.PolicyAdmitAll, stubCustomers{}, logger)
	if err != nil {
		t.Fatalf("build policy: %v", err)
	}
	svc := service.NewInvoiceService(sessions, profiles, stubCustomers{}, policy, logger)

	return httpserver.NewRouter(httpserver.Routes{
		FacilityInvoices: handlers.NewFacilityInvoicesHandler(svc, logger),
		CustomerInvoice:  handlers.NewCustomerInvoiceHandler(svc, logger),
		Health:           handlers.NewHealthHandler(),
		Auth:             auth,
	})
}

func TestFacilityInvoicesEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities/garage-1/invoices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Invoices []models.Invoice `json:"invoices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(body.Invoices))
	}
	if !body.Invoices[0].Amount.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("expected amount 4.00, got %s", body.Invoices[0].Amount)
	}
}

func TestFacilityInvoicesUnknownFacilityIs404(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities/garage-missing/invoices", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "garage-missing") {
		t.Errorf("expected facility id in error body, got %s", rec.Body.String())
	}
}

func TestCustomerInvoiceEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities/garage-1/invoices/cust-absent", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var invoice models.Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !invoice.Amount.IsZero() {
		t.Errorf("expected zero amount for customer without sessions, got %s", invoice.Amount)
	}
}

func TestInvoiceEndpointsRejectWrongMethod(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/facilities/garage-1/invoices", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestAuthGuardOnInvoiceEndpoints(t *testing.T) {
	const secret = "test-secret"
	router := newTestRouter(t, middleware.AuthMiddleware(secret))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/facilities/garage-1/invoices", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/facilities/garage-1/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	// Health stays open.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", rec.Code)
	}
}
