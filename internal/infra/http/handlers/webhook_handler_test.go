package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-talent/internal/entity"
	"github.com/xavierca1/ligue-talent/internal/usecase"
)

// MockCandidateRepository
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Upsert(ctx context.Context, c *entity.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindAll(ctx context.Context) ([]entity.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) FindHired(ctx context.Context) ([]entity.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

func newWebhookHandler(repo entity.CandidateRepositoryInterface) *WebhookHandler {
	uc := usecase.NewIngestCandidateUseCase(repo, nil, nil)
	return NewWebhookHandler(uc)
}

// ============ TESTES DO WEBHOOK ============

func TestWebhookHandlerSuccess(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	handler := newWebhookHandler(mockRepo)

	body := []byte(`{"candidate_id":"c1","full_name":"Joana Teste","source":"LinkedIn","touchpoints":"4"}`)
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response usecase.IngestCandidateOutput
	json.NewDecoder(w.Body).Decode(&response)
	assert.True(t, response.Success)
	assert.Equal(t, "c1", response.CandidateID)
}

func TestWebhookHandlerInvalidJSON(t *testing.T) {
	handler := newWebhookHandler(new(MockCandidateRepository))

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "INVALID_JSON", errResponse["error"])
}

func TestWebhookHandlerMissingID(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	handler := newWebhookHandler(mockRepo)

	body := []byte(`{"full_name":"Sem ID"}`)
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "MISSING_CANDIDATE_ID", errResponse["error"])

	// Rejeitado ANTES de qualquer mutação
	mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestWebhookHandlerStorageError(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	handler := newWebhookHandler(mockRepo)

	body := []byte(`{"candidate_id":"c1"}`)
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "STORAGE_ERROR", errResponse["error"])
}
