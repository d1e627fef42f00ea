package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// LedgerReaderSvc defines read operations for journal entry data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries for a company.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for journal entry data
type LedgerWriterSvc interface {
	// PostEntry validates and persists a balanced journal entry with its lines.
	PostEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostCanonicalEvent posts the fixed-shape entry for a recurring business
	// event. A nil entry with a nil error means the event was gated off (for
	// example issuing a draft invoice) and nothing was posted.
	PostCanonicalEvent(ctx context.Context, companyID string, req dto.CanonicalEventRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a reversal entry for an existing entry and marks
	// the original REVERSED.
	ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteWithReversal reverses the entry referencing a deleted business
	// record. Absence of such an entry is a no-op, not an error.
	DeleteWithReversal(ctx context.Context, companyID string, sourceRecordID string, actorUserID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
