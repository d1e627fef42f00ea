package models

// Company is the persistence shape of a company aggregate.
type Company struct {
	CompanyID           string  `json:"companyID"`
	Name                string  `json:"name"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}
