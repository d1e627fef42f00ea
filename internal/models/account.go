package models

import "github.com/shopspring/decimal"

// AccountType mirrors the domain account type as stored in the accounts table.
// The allowed values are enforced by a CHECK constraint in the schema.
type AccountType string

// Account is the persistence shape of a chart-of-accounts row.
type Account struct {
	AccountID   string      `json:"accountID"`
	CompanyID   *string     `json:"companyID"` // NULL = global chart row
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached projection, advisory only
}
