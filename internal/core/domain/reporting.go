package domain

import (
	"github.com/shopspring/decimal"
)

// ReportSource selects which record systems feed an income statement.
type ReportSource string

const (
	SourceJournal ReportSource = "journal"
	SourceLegacy  ReportSource = "legacy"
	SourceBoth    ReportSource = "both"
)

// CategoryAmount represents one revenue or expense bucket in a report.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SourceTotals separates journal-derived from legacy-derived totals for auditability.
type SourceTotals struct {
	JournalRevenue  decimal.Decimal `json:"journalRevenue"`
	JournalExpenses decimal.Decimal `json:"journalExpenses"`
	LegacyRevenue   decimal.Decimal `json:"legacyRevenue"`
	LegacyExpenses  decimal.Decimal `json:"legacyExpenses"`
}

// IncomeStatement is the aggregated revenue/expense view over a period.
type IncomeStatement struct {
	Revenue       []CategoryAmount `json:"revenue"`
	Expenses      []CategoryAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
	NetMargin     decimal.Decimal  `json:"netMargin"` // NetIncome / TotalRevenue, zero when no revenue
	Sources       SourceTotals     `json:"sources"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
