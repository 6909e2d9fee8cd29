package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

// Dispara alguns registros de exemplo contra o /webhook local para
// testar o funil de ponta a ponta (ingest -> métricas -> broadcast).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	records := []map[string]any{
		{
			"candidate_id": "c-001", "full_name": "Joana Teste", "source": "LinkedIn",
			"event_name": "Meetup SP", "role": "Backend Dev", "outreach_date": "2024-03-01",
			"interview_stage": "Interview", "touchpoints": "4",
		},
		{
			"candidate_id": "c-002", "full_name": "Carlos Exemplo", "source": "Referral",
			"role": "Backend Dev", "outreach_date": "2024-02-10",
			"interview_stage": "Hired", "hire_date": "2024-04-01", "touchpoints": 6,
		},
		{
			"candidate_id": "c-003", "full_name": "Ana Demo", "source": "Referral",
			"event_name": "Meetup SP", "interview_stage": "Screening",
		},
	}

	fmt.Printf("🔄 Enviando %d registros para %s/webhook...\n", len(records), baseURL)

	for _, rec := range records {
		body, _ := json.Marshal(rec)
		resp, err := http.Post(baseURL+"/webhook", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("❌ Erro ao enviar %s: %v", rec["candidate_id"], err)
		}
		fmt.Printf("   %s -> %s\n", rec["candidate_id"], resp.Status)
		resp.Body.Close()
	}

	fmt.Printf("\nConfira o snapshot em %s/api/metrics\n", baseURL)
}
