package services

import (
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Ledger = NewLedgerService(repos.JournalRepo, repos.AccountRepo, repos.RecordsRepo)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.RecordsRepo, MatchDefaults{
		ToleranceDays:   cfg.AutoMatchToleranceDays,
		AmountTolerance: cfg.AutoMatchAmountTolerance,
	})
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.RecordsRepo)
	container.Payroll = NewPayrollService(cfg.SUIRate)

	return container
}
