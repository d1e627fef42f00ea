package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side increases an account of a given type.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the normal balance side for an account type.
// ASSET and EXPENSE accounts are debit-normal; the rest are credit-normal.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents a chart-of-accounts row within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (e.g., UUID)
	CompanyID   *string     `json:"companyID"`   // FK -> companies.company_id; nil means a global chart row
	Code        string      `json:"code"`        // Ledger code, unique per company (or globally when CompanyID is nil)
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`    // Soft delete or status flag
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached running balance; advisory only, posted lines are the source of truth
}

// Well-known ledger codes used by the canonical posting patterns.
const (
	CodeCash               = "1000"
	CodeBank               = "1010"
	CodeAccountsReceivable = "1100"
	CodeSalesRevenue       = "4000"
	CodeServiceRevenue     = "4100"
	CodeOtherIncome        = "4900"
	CodeSalaryExpense      = "6000"
	CodeRentExpense        = "6100"
	CodeUtilitiesExpense   = "6200"
	CodeOtherExpense       = "6900"
)
