package service

import (
	"context"

	"github.com/shopspring/decimal"

	"parkbill/internal/models"
)

// CustomerCharge is one session's priced result, ready for aggregation.
type CustomerCharge struct {
	CustomerID string
	Amount     decimal.Decimal
}

// InvoiceAggregator folds per-session charges into one invoice per customer.
type InvoiceAggregator struct {
	policy CustomerPolicy
}

// NewInvoiceAggregator returns aggregator using the given validity policy.
func NewInvoiceAggregator(policy CustomerPolicy) *InvoiceAggregator {
	return &InvoiceAggregator{policy: policy}
}

// Aggregate sums charges per customer and emits invoices in first-seen
// customer order. The policy is consulted once per distinct customer;
// excluded customers contribute no invoice.
func (a *InvoiceAggregator) Aggregate(ctx context.Context, facilityID string, charges []CustomerCharge) ([]models.Invoice, error) {
	totals := make(map[string]decimal.Decimal, len(charges))
	order := make([]string, 0, len(charges))
	admitted := make(map[string]bool, len(charges))

	for _, charge := range charges {
		if _, seen := totals[charge.CustomerID]; !seen {
			ok, err := a.policy.Admit(ctx, facilityID, charge.CustomerID)
			if err != nil {
				return nil, err
			}
			admitted[charge.CustomerID] = ok
			totals[charge.CustomerID] = decimal.Zero
			order = append(order, charge.CustomerID)
		}
		totals[charge.CustomerID] = totals[charge.CustomerID].Add(charge.Amount)
	}

	invoices := make([]models.Invoice, 0, len(order))
	for _, customerID := range order {
		if !admitted[customerID] {
			continue
		}
		invoices = append(invoices, models.Invoice{
			FacilityID: facilityID,
			CustomerID: customerID,
			Amount:     totals[customerID],
		})
	}
	return invoices, nil
}
