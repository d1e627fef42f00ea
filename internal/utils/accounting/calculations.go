package accounting

import (
	"fmt"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum permitted absolute difference between total
// debits and total credits of a journal entry.
var BalanceTolerance = decimal.RequireFromString("0.01")

// SignedAmount applies the correct sign to a line's net movement based on the
// account's normal balance side. This is used in both services and
// repositories to ensure consistent accounting logic.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.AccountTypeAsset, domain.AccountTypeExpense:
		return net, nil
	case domain.AccountTypeLiability, domain.AccountTypeEquity, domain.AccountTypeRevenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// EntryTotals sums the debit and credit columns of an entry's lines.
func EntryTotals(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether total debits equal total credits within tolerance.
func IsBalanced(lines []domain.JournalEntryLine) bool {
	debits, credits := EntryTotals(lines)
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}

// BalanceChanges computes the net signed balance change per account for a set
// of lines, keyed by account ID.
func BalanceChanges(lines []domain.JournalEntryLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		signed, err := SignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}
