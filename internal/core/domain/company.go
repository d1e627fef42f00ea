package domain

// Company is the aggregate root that owns a chart of accounts and its journal.
type Company struct {
	CompanyID           string  `json:"companyID"`           // Primary Key (e.g., UUID)
	Name                string  `json:"name"`                // Registered business name
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // Default currency code for this company (e.g., "USD")
	IsActive            bool    `json:"isActive"`            // Indicates whether the company is active or disabled
	AuditFields
}
