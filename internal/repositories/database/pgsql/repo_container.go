package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	recordsRepo := newPgxRecordsRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		JournalRepo:        journalRepo,
		CompanyRepo:        companyRepo,
		ReconciliationRepo: reconciliationRepo,
		RecordsRepo:        recordsRepo,
		ReportingRepo:      reportingRepo,
	}
}
