package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIngestInputMissingID(t *testing.T) {
	errs := ValidateIngestInput(IngestCandidateInput{FullName: "Fulano"})

	assert.Len(t, errs, 1)
	assert.Equal(t, "candidate_id", errs[0].Field)
}

func TestValidateIngestInputWhitespaceID(t *testing.T) {
	errs := ValidateIngestInput(IngestCandidateInput{CandidateID: "   "})

	assert.Len(t, errs, 1)
}

func TestValidateIngestInputOK(t *testing.T) {
	// Só o id é obrigatório; o resto é opcional
	errs := ValidateIngestInput(IngestCandidateInput{CandidateID: "c1"})

	assert.Empty(t, errs)
}
