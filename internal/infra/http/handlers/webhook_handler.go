package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-talent/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-talent/internal/usecase"
)

// WebhookHandler recebe um registro de candidato por chamada, vindo do
// webhook da planilha. Um POST = uma linha.
type WebhookHandler struct {
	Ingest      *usecase.IngestCandidateUseCase
	rateLimiter *RateLimiter
}

func NewWebhookHandler(ingest *usecase.IngestCandidateUseCase) *WebhookHandler {
	return &WebhookHandler{
		Ingest:      ingest,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min por IP
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED")
		return
	}

	var input usecase.IngestCandidateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.RecordIngest("invalid_json")
		writeError(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}

	output, err := h.Ingest.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsValidationError(err) {
			middleware.RecordIngest("rejected")
			writeError(w, http.StatusBadRequest, "MISSING_CANDIDATE_ID")
			return
		}
		log.Printf("❌ Falha no ingest de %q: %v", input.CandidateID, err)
		middleware.RecordIngest("storage_error")
		writeError(w, http.StatusInternalServerError, "STORAGE_ERROR")
		return
	}

	middleware.RecordIngest("ok")
	if input.HireDate != "" {
		middleware.RecordHire()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(output)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}
