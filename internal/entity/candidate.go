package entity

import (
	"context"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Estágios que contam como "entrevistado ou além" no funil.
const (
	StageInterview = "Interview"
	StageOffer     = "Offer"
	StageHired     = "Hired"
)

// Entidade: Candidate
// Uma linha por candidato, identificada pelo candidate_id vindo da planilha.
// Datas ficam como string (formato livre da planilha, ex: "2024-01-01").
type Candidate struct {
	CandidateID    string `json:"candidate_id"`
	FullName       string `json:"full_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Source         string `json:"source,omitempty"`
	EventName      string `json:"event_name,omitempty"`
	Role           string `json:"role,omitempty"`
	OutreachDate   string `json:"outreach_date,omitempty"`
	InterviewStage string `json:"interview_stage,omitempty"`
	Touchpoints    *int   `json:"touchpoints,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
	Notes          string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hired: contratado quando hire_date está preenchido.
func (c *Candidate) Hired() bool {
	return c.HireDate != ""
}

// InterviewedOrBeyond: estágio Interview, Offer ou Hired.
func (c *Candidate) InterviewedOrBeyond() bool {
	switch c.InterviewStage {
	case StageInterview, StageOffer, StageHired:
		return true
	}
	return false
}

type CandidateRepositoryInterface interface {
	// Upsert substitui TODOS os campos quando o id já existe (replace, não merge).
	Upsert(ctx context.Context, c *Candidate) error
	FindAll(ctx context.Context) ([]Candidate, error)
	// FindHired retorna contratados ordenados por hire_date desc.
	FindHired(ctx context.Context) ([]Candidate, error)
}
