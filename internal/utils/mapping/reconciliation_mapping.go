package mapping

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
)

// ToDomainBankAccount converts a model BankAccount to the domain representation.
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		Balance:        m.Balance,
		LastReconciled: m.LastReconciled,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to a model.
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		Balance:        d.Balance,
		LastReconciled: d.LastReconciled,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to a model.
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:    d.TransactionID,
		BankAccountID:    d.BankAccountID,
		Date:             d.Date,
		Description:      d.Description,
		Amount:           d.Amount,
		Debit:            d.Debit,
		Credit:           d.Credit,
		Reconciled:       d.Reconciled,
		ReconciledAt:     d.ReconciledAt,
		ReconciliationID: d.ReconciliationID,
		MatchedExpenseID: d.MatchedExpenseID,
		MatchedInvoiceID: d.MatchedInvoiceID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a model BankTransaction to the domain representation.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:    m.TransactionID,
		BankAccountID:    m.BankAccountID,
		Date:             m.Date,
		Description:      m.Description,
		Amount:           m.Amount,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Reconciled:       m.Reconciled,
		ReconciledAt:     m.ReconciledAt,
		ReconciliationID: m.ReconciliationID,
		MatchedExpenseID: m.MatchedExpenseID,
		MatchedInvoiceID: m.MatchedInvoiceID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankTransactionSlice converts a slice of model bank transactions.
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	ds := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankTransaction(m)
	}
	return ds
}

// ToModelBankReconciliation converts a domain BankReconciliation to a model.
func ToModelBankReconciliation(d domain.BankReconciliation) models.BankReconciliation {
	return models.BankReconciliation{
		ReconciliationID: d.ReconciliationID,
		BankAccountID:    d.BankAccountID,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		OpeningBalance:   d.OpeningBalance,
		ClosingBalance:   d.ClosingBalance,
		Status:           models.ReconciliationStatus(d.Status),
		ReconciledBy:     d.ReconciledBy,
		CompletedAt:      d.CompletedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankReconciliation converts a model BankReconciliation to the domain representation.
func ToDomainBankReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID: m.ReconciliationID,
		BankAccountID:    m.BankAccountID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		Status:           domain.ReconciliationStatus(m.Status),
		ReconciledBy:     m.ReconciledBy,
		CompletedAt:      m.CompletedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
