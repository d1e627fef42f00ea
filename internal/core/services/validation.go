package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
)

// validate is the shared struct validator for request DTOs. It reads the
// `validate` tags on the dto package types.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest runs struct tag validation and folds failures into the
// ErrValidation sentinel so callers can handle all bad input uniformly.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
