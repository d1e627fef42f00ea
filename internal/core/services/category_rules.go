package services

import (
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// categoryRule maps a category label to a chart code when the label contains
// any of the keywords. Rules are evaluated in order and the first match wins,
// so broader keywords must come later in the list.
type categoryRule struct {
	keywords    []string
	accountCode string
}

// expenseCategoryRules resolve expense categories to expense account codes.
// Keyword lists include the Spanish labels that show up in imported data.
var expenseCategoryRules = []categoryRule{
	{keywords: []string{"salary", "salario", "payroll", "wage"}, accountCode: domain.CodeSalaryExpense},
	{keywords: []string{"rent", "alquiler", "lease"}, accountCode: domain.CodeRentExpense},
	{keywords: []string{"utilit", "electric", "water", "gas", "internet", "phone"}, accountCode: domain.CodeUtilitiesExpense},
}

// incomeCategoryRules resolve income categories to revenue account codes.
var incomeCategoryRules = []categoryRule{
	{keywords: []string{"sale", "venta", "product"}, accountCode: domain.CodeSalesRevenue},
	{keywords: []string{"service", "servicio", "consult"}, accountCode: domain.CodeServiceRevenue},
}

// matchCategory runs the rule list against a category label, returning the
// fallback code when nothing matches.
func matchCategory(rules []categoryRule, category string, fallback string) string {
	lowered := strings.ToLower(category)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.accountCode
			}
		}
	}
	return fallback
}

// ExpenseAccountCodeFor resolves the expense account code for a category label.
func ExpenseAccountCodeFor(category string) string {
	return matchCategory(expenseCategoryRules, category, domain.CodeOtherExpense)
}

// IncomeAccountCodeFor resolves the revenue account code for a category label.
func IncomeAccountCodeFor(category string) string {
	return matchCategory(incomeCategoryRules, category, domain.CodeOtherIncome)
}
