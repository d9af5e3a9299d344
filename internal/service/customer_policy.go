package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"parkbill/internal/repository"
)

// Policy names accepted by NewCustomerPolicy.
const (
	PolicyAdmitAll          = "admit-all"
	PolicyRequireKnown      = "require-known"
	PolicyRequireContracted = "require-contracted"
)

// CustomerPolicy decides whether a customer id appearing in the session set
// gets an invoice. Policies may consult the customer source; anomalies they
// tolerate are logged, never silently dropped.
type CustomerPolicy interface {
	Admit(ctx context.Context, facilityID, customerID string) (bool, error)
}

// NewCustomerPolicy builds the policy selected by name. Unrecognized names
// are a configuration error.
func NewCustomerPolicy(name string, customers CustomerSource, logger *zap.Logger) (CustomerPolicy, error) {
	switch name {
	case "", PolicyAdmitAll:
		return admitAllPolicy{}, nil
	case PolicyRequireKnown:
		return &requireKnownPolicy{customers: customers, logger: logger}, nil
	case PolicyRequireContracted:
		return &requireContractedPolicy{customers: customers, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown customer policy %q", name)
	}
}

// admitAllPolicy invoices every customer id present in the sessions.
type admitAllPolicy struct{}

func (admitAllPolicy) Admit(ctx context.Context, facilityID, customerID string) (bool, error) {
	return true, nil
}

// requireKnownPolicy excludes customer ids absent from the customer source.
type requireKnownPolicy struct {
	customers CustomerSource
	logger    *zap.Logger
}

func (p *requireKnownPolicy) Admit(ctx context.Context, facilityID, customerID string) (bool, error) {
	_, err := p.customers.GetByID(ctx, customerID)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		p.logger.Warn("excluding unknown customer from invoicing",
			zap.String("customer_id", customerID),
			zap.String("facility_id", facilityID),
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// requireContractedPolicy excludes unknown customers and warns (without
// excluding) when a known customer is not contracted to the facility.
type requireContractedPolicy struct {
	customers CustomerSource
	logger    *zap.Logger
}

func (p *requireContractedPolicy) Admit(ctx context.Context, facilityID, customerID string) (bool, error) {
	customer, err := p.customers.GetByID(ctx, customerID)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		p.logger.Warn("excluding unknown customer from invoicing",
			zap.String("customer_id", customerID),
			zap.String("facility_id", facilityID),
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !customer.IsContractedTo(facilityID) {
		p.logger.Warn("customer not contracted to facility",
			zap.String("customer_id", customerID),
			zap.String("facility_id", facilityID),
		)
	}
	return true, nil
}
