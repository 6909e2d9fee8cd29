package usecase

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidateIngestInput: só checagem de presença. A planilha manda o resto
// do jeito que quiser (campos opcionais, datas em texto livre).
func ValidateIngestInput(input IngestCandidateInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.CandidateID) == "" {
		errs = append(errs, ValidationError{"candidate_id", "is required"})
	}

	return errs
}
