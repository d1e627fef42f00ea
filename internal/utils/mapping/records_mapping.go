package mapping

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
)

// ToDomainExpense converts a model Expense to the domain representation.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		CompanyID:   m.CompanyID,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Status:      domain.ExpenseStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model expenses.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToDomainInvoice converts a model Invoice to the domain representation.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		CompanyID:     m.CompanyID,
		InvoiceNumber: m.InvoiceNumber,
		CustomerName:  m.CustomerName,
		Total:         m.Total,
		IssueDate:     m.IssueDate,
		PaidDate:      m.PaidDate,
		Status:        domain.InvoiceStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model invoices.
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToDomainLegacyTransaction converts a model LegacyTransaction to the domain representation.
func ToDomainLegacyTransaction(m models.LegacyTransaction) domain.LegacyTransaction {
	return domain.LegacyTransaction{
		TransactionID: m.TransactionID,
		CompanyID:     m.CompanyID,
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
