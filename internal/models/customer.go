package models

// Customer is a registered parking customer with the facilities it is
// contracted to. Used only by the customer-validity policies.
type Customer struct {
	ID                    string   `db:"id" json:"id"`
	Name                  string   `db:"name" json:"name"`
	ContractedFacilityIDs []string `json:"contracted_facility_ids"`
}

// IsContractedTo reports whether the customer holds a contract for the facility.
func (c Customer) IsContractedTo(facilityID string) bool {
	for _, id := range c.ContractedFacilityIDs {
		if id == facilityID {
			return true
		}
	}
	return false
}
