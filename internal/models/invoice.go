package models

import "github.com/shopspring/decimal"

// Invoice is the per-customer total for one facility. Computed on demand,
// never persisted.
type Invoice struct {
	FacilityID string          `json:"facility_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}
