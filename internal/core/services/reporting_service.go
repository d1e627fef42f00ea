package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingReader
	recordsRepo   portsrepo.RecordsRepositoryFacade
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingReader, recordsRepo portsrepo.RecordsRepositoryFacade) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo: reportingRepo,
		recordsRepo:   recordsRepo,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// BuildIncomeStatement aggregates revenue and expense activity over a period.
// Journal totals come from POSTED entry lines grouped by account name. Legacy
// totals come from pre-ledger records, minus any record whose id already
// appears as a journal entry reference, so a migrated record is never counted
// twice.
func (s *reportingService) BuildIncomeStatement(ctx context.Context, companyID string, params dto.IncomeStatementParams) (*domain.IncomeStatement, error) {
	source := params.Source
	if source == "" {
		source = domain.SourceBoth
	}

	revenueByCategory := make(map[string]decimal.Decimal)
	expensesByCategory := make(map[string]decimal.Decimal)
	sources := domain.SourceTotals{
		JournalRevenue:  decimal.Zero,
		JournalExpenses: decimal.Zero,
		LegacyRevenue:   decimal.Zero,
		LegacyExpenses:  decimal.Zero,
	}

	if source == domain.SourceJournal || source == domain.SourceBoth {
		revenue, err := s.reportingRepo.SumJournalByAccountType(ctx, companyID, domain.AccountTypeRevenue, params.StartDate, params.EndDate)
		if err != nil {
			s.LogError(ctx, err, "Failed to aggregate journal revenue", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to aggregate journal revenue: %w", err)
		}
		expenses, err := s.reportingRepo.SumJournalByAccountType(ctx, companyID, domain.AccountTypeExpense, params.StartDate, params.EndDate)
		if err != nil {
			s.LogError(ctx, err, "Failed to aggregate journal expenses", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to aggregate journal expenses: %w", err)
		}
		for _, r := range revenue {
			revenueByCategory[r.Category] = revenueByCategory[r.Category].Add(r.Amount)
			sources.JournalRevenue = sources.JournalRevenue.Add(r.Amount)
		}
		for _, e := range expenses {
			expensesByCategory[e.Category] = expensesByCategory[e.Category].Add(e.Amount)
			sources.JournalExpenses = sources.JournalExpenses.Add(e.Amount)
		}
	}

	if source == domain.SourceLegacy || source == domain.SourceBoth {
		referenced, err := s.reportingRepo.FindReferencedLegacyIDs(ctx, companyID)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch referenced legacy ids", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to fetch referenced legacy ids: %w", err)
		}

		legacy, err := s.recordsRepo.ListLegacyTransactions(ctx, companyID, params.StartDate, params.EndDate)
		if err != nil {
			s.LogError(ctx, err, "Failed to list legacy transactions", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to list legacy transactions: %w", err)
		}
		for _, txn := range legacy {
			if _, migrated := referenced[txn.TransactionID]; migrated {
				continue
			}
			category := txn.Category
			if category == "" {
				category = "Uncategorized"
			}
			revenueByCategory[category] = revenueByCategory[category].Add(txn.Amount)
			sources.LegacyRevenue = sources.LegacyRevenue.Add(txn.Amount)
		}

		expenses, err := s.recordsRepo.ListApprovedExpenses(ctx, companyID, false)
		if err != nil {
			s.LogError(ctx, err, "Failed to list legacy expenses", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to list legacy expenses: %w", err)
		}
		for _, exp := range expenses {
			if exp.Date.Before(params.StartDate) || exp.Date.After(params.EndDate) {
				continue
			}
			if _, migrated := referenced[exp.ExpenseID]; migrated {
				continue
			}
			category := exp.Category
			if category == "" {
				category = "Uncategorized"
			}
			expensesByCategory[category] = expensesByCategory[category].Add(exp.Amount)
			sources.LegacyExpenses = sources.LegacyExpenses.Add(exp.Amount)
		}
	}

	statement := &domain.IncomeStatement{
		Revenue:       toSortedCategories(revenueByCategory),
		Expenses:      toSortedCategories(expensesByCategory),
		TotalRevenue:  sources.JournalRevenue.Add(sources.LegacyRevenue),
		TotalExpenses: sources.JournalExpenses.Add(sources.LegacyExpenses),
		Sources:       sources,
	}
	statement.NetIncome = statement.TotalRevenue.Sub(statement.TotalExpenses)
	if statement.TotalRevenue.IsZero() {
		statement.NetMargin = decimal.Zero
	} else {
		statement.NetMargin = statement.NetIncome.Div(statement.TotalRevenue).Round(4)
	}

	s.LogInfo(ctx, "Income statement generated",
		slog.String("company_id", companyID),
		slog.String("source", string(source)),
		slog.Int("revenue_categories", len(statement.Revenue)),
		slog.Int("expense_categories", len(statement.Expenses)))
	return statement, nil
}

// BuildTrialBalance returns per-account debit/credit totals as of a date.
func (s *reportingService) BuildTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	rows, err := s.reportingRepo.TrialBalanceRows(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", companyID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(rows)))
	return &dto.TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// toSortedCategories flattens a category map into a deterministic slice.
func toSortedCategories(byCategory map[string]decimal.Decimal) []domain.CategoryAmount {
	out := make([]domain.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		out = append(out, domain.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
