package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a new company.
type CreateCompanyRequest struct {
	Name                string  `json:"name" validate:"required,min=1,max=100"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode" validate:"omitempty,len=3"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID           string    `json:"companyID"`
	Name                string    `json:"name"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:           c.CompanyID,
		Name:                c.Name,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}
