package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-talent/internal/entity"
)

// HiredHandler: listagem read-only de contratados para inspeção,
// ordenada por hire_date desc (ordenação vem do repositório).
type HiredHandler struct {
	Repo entity.CandidateRepositoryInterface
}

func NewHiredHandler(repo entity.CandidateRepositoryInterface) *HiredHandler {
	return &HiredHandler{Repo: repo}
}

type HiredListResponse struct {
	Count      int                `json:"count"`
	Candidates []entity.Candidate `json:"candidates"`
}

func (h *HiredHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Repo.FindHired(r.Context())
	if err != nil {
		log.Printf("❌ Falha ao listar contratados: %v", err)
		writeError(w, http.StatusInternalServerError, "STORAGE_ERROR")
		return
	}

	if records == nil {
		records = []entity.Candidate{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HiredListResponse{
		Count:      len(records),
		Candidates: records,
	})
}
