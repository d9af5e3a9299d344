package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"parkbill/internal/models"
	"parkbill/internal/repository"
)

// SessionSource supplies the completed sessions of a facility.
type SessionSource interface {
	ListByFacility(ctx context.Context, facilityID string) ([]models.Session, error)
}

// RateProfileSource supplies a facility's rate profile, or
// repository.ErrProfileNotFound when the facility is not registered.
type RateProfileSource interface {
	GetByFacility(ctx context.Context, facilityID string) (*models.RateProfile, error)
}

// CustomerSource supplies customer records, or repository.ErrCustomerNotFound.
type CustomerSource interface {
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
}

// InvoiceService computes parking invoices on demand from the session,
// rate-profile, and customer sources.
type InvoiceService struct {
	sessions   SessionSource
	profiles   RateProfileSource
	customers  CustomerSource
	calculator *SessionCostCalculator
	aggregator *InvoiceAggregator
	logger     *zap.Logger
}

// NewInvoiceService wires the facade.
func NewInvoiceService(sessions SessionSource, profiles RateProfileSource, customers CustomerSource, policy CustomerPolicy, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		sessions:   sessions,
		profiles:   profiles,
		customers:  customers,
		calculator: NewSessionCostCalculator(logger),
		aggregator: NewInvoiceAggregator(policy),
		logger:     logger,
	}
}

// GetInvoices returns one invoice per customer with sessions at the facility.
// A facility without sessions yields an empty list; a facility without a rate
// profile yields UnknownFacilityError.
func (s *InvoiceService) GetInvoices(ctx context.Context, facilityID string) ([]models.Invoice, error) {
	profile, err := s.loadProfile(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("load sessions for facility %q: %w", facilityID, err)
	}

	charges := make([]CustomerCharge, 0, len(sessions))
	for _, session := range sessions {
		amount, err := s.calculator.Calculate(session, profile)
		if err != nil {
			return nil, err
		}
		charges = append(charges, CustomerCharge{CustomerID: session.CustomerID, Amount: amount})
	}

	return s.aggregator.Aggregate(ctx, facilityID, charges)
}

// GetInvoice returns the single customer's invoice for the facility. A
// customer without sessions gets a zero-amount invoice. Customer existence
// is checked only advisorily and never blocks the result.
func (s *InvoiceService) GetInvoice(ctx context.Context, facilityID, customerID string) (models.Invoice, error) {
	profile, err := s.loadProfile(ctx, facilityID)
	if err != nil {
		return models.Invoice{}, err
	}

	s.checkCustomerAdvisory(ctx, facilityID, customerID)

	sessions, err := s.sessions.ListByFacility(ctx, facilityID)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("load sessions for facility %q: %w", facilityID, err)
	}

	total := decimal.Zero
	for _, session := range sessions {
		if session.CustomerID != customerID {
			continue
		}
		amount, err := s.calculator.Calculate(session, profile)
		if err != nil {
			return models.Invoice{}, err
		}
		total = total.Add(amount)
	}

	return models.Invoice{
		FacilityID: facilityID,
		CustomerID: customerID,
		Amount:     total,
	}, nil
}

func (s *InvoiceService) loadProfile(ctx context.Context, facilityID string) (*models.RateProfile, error) {
	profile, err := s.profiles.GetByFacility(ctx, facilityID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, &UnknownFacilityError{FacilityID: facilityID}
	}
	if err != nil {
		return nil, fmt.Errorf("load rate profile for facility %q: %w", facilityID, err)
	}
	return profile, nil
}

func (s *InvoiceService) checkCustomerAdvisory(ctx context.Context, facilityID, customerID string) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		s.logger.Warn("invoicing unknown customer",
			zap.String("customer_id", customerID),
			zap.String("facility_id", facilityID),
		)
		return
	}
	if err != nil {
		s.logger.Warn("customer lookup failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return
	}
	if !customer.IsContractedTo(facilityID) {
		s.logger.Warn("customer not contracted to facility",
			zap.String("customer_id", customerID),
			zap.String("facility_id", facilityID),
		)
	}
}
