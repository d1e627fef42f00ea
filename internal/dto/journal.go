package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one line of a journal entry to be posted.
// Exactly one of Debit or Credit must be positive; the other must be zero.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" validate:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to post a journal entry.
type CreateEntryRequest struct {
	CompanyID    string                   `json:"companyID" validate:"required,uuid"`
	EntryDate    time.Time                `json:"entryDate" validate:"required"`
	Description  string                   `json:"description" validate:"required"`
	Reference    *string                  `json:"reference"`
	CurrencyCode string                   `json:"currencyCode" validate:"omitempty,len=3"`
	Lines        []CreateEntryLineRequest `json:"lines" validate:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a journal entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNumber  int             `json:"lineNumber"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	EntryNumber      string              `json:"entryNumber"`
	CompanyID        string              `json:"companyID"`
	EntryDate        time.Time           `json:"entryDate"`
	Description      string              `json:"description"`
	Reference        *string             `json:"reference"`
	CurrencyCode     string              `json:"currencyCode"`
	Status           domain.EntryStatus  `json:"status"`
	OriginalEntryID  *string             `json:"originalEntryID"`
	ReversingEntryID *string             `json:"reversingEntryID"`
	Lines            []EntryLineResponse `json:"lines"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `json:"limit" validate:"omitempty,min=1,max=100"`
	NextToken        *string `json:"nextToken"`
	IncludeReversals bool    `json:"includeReversals"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain line to its response DTO.
func ToEntryLineResponse(line *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
		LineNumber:  line.LineNumber,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = ToEntryLineResponse(&line)
	}
	return EntryResponse{
		EntryID:          entry.EntryID,
		EntryNumber:      entry.EntryNumber,
		CompanyID:        entry.CompanyID,
		EntryDate:        entry.EntryDate,
		Description:      entry.Description,
		Reference:        entry.Reference,
		CurrencyCode:     entry.CurrencyCode,
		Status:           entry.Status,
		OriginalEntryID:  entry.OriginalEntryID,
		ReversingEntryID: entry.ReversingEntryID,
		Lines:            lines,
		CreatedAt:        entry.CreatedAt,
		CreatedBy:        entry.CreatedBy,
	}
}

// ToListEntriesResponse converts a page of domain entries plus its pagination token.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: res, NextToken: nextToken}
}
