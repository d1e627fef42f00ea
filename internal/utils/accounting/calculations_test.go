package accounting_test

import (
	"testing"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(accountID string, debit, credit string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID: accountID,
		Debit:     decimal.RequireFromString(debit),
		Credit:    decimal.RequireFromString(credit),
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.JournalEntryLine
		accountType domain.AccountType
		want        string
	}{
		{"debit to asset is positive", line("a", "100", "0"), domain.AccountTypeAsset, "100"},
		{"credit to asset is negative", line("a", "0", "100"), domain.AccountTypeAsset, "-100"},
		{"debit to expense is positive", line("a", "50", "0"), domain.AccountTypeExpense, "50"},
		{"debit to liability is negative", line("a", "100", "0"), domain.AccountTypeLiability, "-100"},
		{"credit to revenue is positive", line("a", "0", "250"), domain.AccountTypeRevenue, "250"},
		{"credit to equity is positive", line("a", "0", "10"), domain.AccountTypeEquity, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedAmount_UnknownAccountType(t *testing.T) {
	_, err := accounting.SignedAmount(line("a", "10", "0"), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestIsBalanced(t *testing.T) {
	balanced := []domain.JournalEntryLine{
		line("cash", "100.00", "0"),
		line("revenue", "0", "100.00"),
	}
	assert.True(t, accounting.IsBalanced(balanced))

	withinTolerance := []domain.JournalEntryLine{
		line("cash", "100.00", "0"),
		line("revenue", "0", "100.01"),
	}
	assert.True(t, accounting.IsBalanced(withinTolerance))

	unbalanced := []domain.JournalEntryLine{
		line("cash", "100.00", "0"),
		line("revenue", "0", "100.02"),
	}
	assert.False(t, accounting.IsBalanced(unbalanced))
}

func TestBalanceChanges_NetsPerAccount(t *testing.T) {
	lines := []domain.JournalEntryLine{
		line("cash", "100", "0"),
		line("cash", "0", "30"),
		line("revenue", "0", "70"),
	}
	types := map[string]domain.AccountType{
		"cash":    domain.AccountTypeAsset,
		"revenue": domain.AccountTypeRevenue,
	}

	changes, err := accounting.BalanceChanges(lines, types)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(changes["cash"]), "cash: got %s", changes["cash"])
	assert.True(t, decimal.NewFromInt(70).Equal(changes["revenue"]), "revenue: got %s", changes["revenue"])
}

func TestBalanceChanges_MissingAccountType(t *testing.T) {
	_, err := accounting.BalanceChanges([]domain.JournalEntryLine{line("ghost", "10", "0")}, nil)
	assert.Error(t, err)
}
