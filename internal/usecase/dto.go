package usecase

// Input do webhook da planilha. Tudo opcional menos candidate_id.
// Touchpoints chega como número OU string dependendo da coluna — fica
// como any e é coagido no usecase.
type IngestCandidateInput struct {
	CandidateID    string `json:"candidate_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Source         string `json:"source"`
	EventName      string `json:"event_name"`
	Role           string `json:"role"`
	OutreachDate   string `json:"outreach_date"`
	InterviewStage string `json:"interview_stage"`
	Touchpoints    any    `json:"touchpoints"`
	HireDate       string `json:"hire_date"`
	Notes          string `json:"notes"`
}

type IngestCandidateOutput struct {
	Success     bool   `json:"success"`
	CandidateID string `json:"candidate_id"`
}

// --- Snapshot do funil ---

type EventConversion struct {
	EventName     string  `json:"event_name"`
	Leads         int     `json:"leads"`
	Interviews    int     `json:"interviews"`
	InterviewRate float64 `json:"interview_rate"`
}

// Avg/Median são ponteiros de propósito: null distingue "nenhuma
// contratação ainda" de "contratações com zero touchpoints".
type TouchpointsToHire struct {
	HiredCount        int      `json:"hired_count"`
	AvgTouchpoints    *float64 `json:"avg_touchpoints"`
	MedianTouchpoints *float64 `json:"median_touchpoints"`
}

type ChannelPerformance struct {
	Source                string  `json:"source"`
	Leads                 int     `json:"leads"`
	Interviews            int     `json:"interviews"`
	Hires                 int     `json:"hires"`
	InterviewRate         float64 `json:"interview_rate"`
	HireRate              float64 `json:"hire_rate"`
	HireFromInterviewRate float64 `json:"hire_from_interview_rate"`
}

type FunnelSnapshot struct {
	GeneratedAt        string               `json:"generated_at"`
	EventConversion    []EventConversion    `json:"event_conversion"`
	TouchpointsToHire  TouchpointsToHire    `json:"touchpoints_to_hire"`
	ChannelPerformance []ChannelPerformance `json:"channel_performance"`
}
