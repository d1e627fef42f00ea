package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEntryMinLines rejects entries with fewer than two lines.
	ErrEntryMinLines = errors.New("journal entry must have at least two lines")
	// ErrAlreadyReversed rejects a second reversal of the same entry.
	ErrAlreadyReversed = errors.New("journal entry has already been reversed")
	// ErrSessionState rejects operations against a session in the wrong state.
	ErrSessionState = errors.New("reconciliation session is not in the required state")
	// ErrDescriptionMissing rejects entries without a description.
	ErrDescriptionMissing = errors.New("journal entry description is required")
)

// UnbalancedEntryError reports a posting whose debits and credits differ by
// more than the accepted tolerance. Both totals are carried so the caller can
// show the discrepancy.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s", e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

// AccountNotFoundError reports a chart code missing from both the company
// chart and the global chart.
type AccountNotFoundError struct {
	Code string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("no account with code %s in company or global chart", e.Code)
}
