package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-talent/internal/entity"
	"github.com/xavierca1/ligue-talent/internal/usecase"
)

// FunnelHandler: recomputa o snapshot inteiro a cada GET. Sem cache —
// nesta escala o full scan é mais barato que manter agregado incremental.
type FunnelHandler struct {
	Repo entity.CandidateRepositoryInterface
}

func NewFunnelHandler(repo entity.CandidateRepositoryInterface) *FunnelHandler {
	return &FunnelHandler{Repo: repo}
}

func (h *FunnelHandler) HandleGetFunnel(w http.ResponseWriter, r *http.Request) {
	records, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("❌ Falha ao ler candidatos: %v", err)
		writeError(w, http.StatusInternalServerError, "STORAGE_ERROR")
		return
	}

	snapshot := usecase.ComputeFunnelSnapshot(records, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
