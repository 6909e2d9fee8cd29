package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/ligue-talent/internal/entity"
	"github.com/xavierca1/ligue-talent/internal/infra/queue"
)

// ChangeNotifierInterface: fan-out "mudou alguma coisa" para os
// dashboards conectados. Fire-and-forget, nunca retorna erro.
type ChangeNotifierInterface interface {
	BroadcastChange(candidateID string, changedAt time.Time)
}

type QueueProducerInterface interface {
	PublishHireNotification(ctx context.Context, payload queue.HireNotificationPayload) error
}

type IngestCandidateUseCase struct {
	Repo     entity.CandidateRepositoryInterface
	Notifier ChangeNotifierInterface
	Queue    QueueProducerInterface
}

func NewIngestCandidateUseCase(
	repo entity.CandidateRepositoryInterface,
	notifier ChangeNotifierInterface,
	producer QueueProducerInterface,
) *IngestCandidateUseCase {
	return &IngestCandidateUseCase{
		Repo:     repo,
		Notifier: notifier,
		Queue:    producer,
	}
}

// Execute: valida, faz o upsert (replace total dos campos) e dispara o
// broadcast. Se o registro veio com hire_date, publica a notificação de
// contratação na fila — best-effort: falha na fila não derruba o ingest.
func (uc *IngestCandidateUseCase) Execute(ctx context.Context, input IngestCandidateInput) (*IngestCandidateOutput, error) {
	if errs := ValidateIngestInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	now := time.Now()
	candidate := &entity.Candidate{
		CandidateID:    strings.TrimSpace(input.CandidateID),
		FullName:       input.FullName,
		Email:          input.Email,
		Source:         input.Source,
		EventName:      input.EventName,
		Role:           input.Role,
		OutreachDate:   input.OutreachDate,
		InterviewStage: input.InterviewStage,
		Touchpoints:    coerceTouchpoints(input.Touchpoints),
		HireDate:       input.HireDate,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.Repo.Upsert(ctx, candidate); err != nil {
		return nil, &StorageError{Op: "upsert candidate", Err: err}
	}

	if uc.Notifier != nil {
		uc.Notifier.BroadcastChange(candidate.CandidateID, now)
	}

	if candidate.Hired() && uc.Queue != nil {
		payload := queue.HireNotificationPayload{
			CandidateID: candidate.CandidateID,
			FullName:    candidate.FullName,
			Email:       candidate.Email,
			Role:        candidate.Role,
			Source:      candidate.Source,
			HireDate:    candidate.HireDate,
			Touchpoints: candidate.Touchpoints,
			Origin:      "WEBHOOK_SHEET",
		}
		if err := uc.Queue.PublishHireNotification(ctx, payload); err != nil {
			log.Printf("⚠️ Candidato salvo, mas falha ao publicar contratação na fila: %v", err)
		}
	}

	return &IngestCandidateOutput{Success: true, CandidateID: candidate.CandidateID}, nil
}

// coerceTouchpoints: a planilha manda número, string ou nada. Qualquer
// coisa que não vire inteiro >= 0 é guardada como ausente.
func coerceTouchpoints(v any) *int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		if n < 0 {
			return nil
		}
		return &n
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil || n < 0 {
			return nil
		}
		return &n
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n := int(f)
		if n < 0 {
			return nil
		}
		return &n
	}
	return nil
}
