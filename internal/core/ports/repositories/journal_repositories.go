package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the posted entry whose reference links the
	// given originating business record, if any.
	FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries for a company using
	// token-based keyset pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically, assigning the
	// per-company-year sequence number and updating cached account balances
	// within one database transaction. When the entry carries an
	// OriginalEntryID the original is marked REVERSED and linked in the same
	// transaction; if the original is no longer open for reversal the save
	// fails with ErrConflict and nothing is committed. The persisted entry is
	// returned with its assigned EntryNumber.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error)
}

// LineReader defines read operations for journal entry lines
type LineReader interface {
	// FindLinesByEntryID retrieves all lines of a single entry in line-number order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
