package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkbill/internal/models"
)

// ErrCustomerNotFound indicates the customer id is not registered.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository reads customer records and their facility contracts.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository returns repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByID returns the customer with its contracted facility ids.
func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	const customerQuery = `
		SELECT id, name
		FROM customers
		WHERE id = $1
	`
	var c models.Customer
	if err := r.db.QueryRowContext(ctx, customerQuery, customerID).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	const contractsQuery = `
		SELECT facility_id
		FROM customer_contracts
		WHERE customer_id = $1
		ORDER BY facility_id
	`
	rows, err := r.db.QueryContext(ctx, contractsQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var facilityID string
		if err := rows.Scan(&facilityID); err != nil {
			return nil, err
		}
		c.ContractedFacilityIDs = append(c.ContractedFacilityIDs, facilityID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}
