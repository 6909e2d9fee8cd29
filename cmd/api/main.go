package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-talent/internal/infra/database"
	"github.com/xavierca1/ligue-talent/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-talent/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-talent/internal/infra/mail"
	"github.com/xavierca1/ligue-talent/internal/infra/notifier"
	"github.com/xavierca1/ligue-talent/internal/infra/queue"
	"github.com/xavierca1/ligue-talent/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("❌ Falha ao preparar schema: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositório
	candidateRepo := database.NewCandidateRepository(db)

	// 2. Fila e email
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Worker (consome a fila e avisa o time de recrutamento)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender, os.Getenv("HR_NOTIFY_EMAIL"))
	go worker.Start(queue.QueueName)

	// 4. Hub de notificação (um por processo, passado explícito)
	hub := notifier.NewHub()
	defer hub.Shutdown()

	// 5. UseCase
	ingestUC := usecase.NewIngestCandidateUseCase(candidateRepo, hub, producer)

	// 6. Handlers
	webhookHandler := handlers.NewWebhookHandler(ingestUC)
	funnelHandler := handlers.NewFunnelHandler(candidateRepo)
	hiredHandler := handlers.NewHiredHandler(candidateRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/webhook", webhookHandler.Handle)
	r.Get("/api/metrics", funnelHandler.HandleGetFunnel)
	r.Get("/api/hired", hiredHandler.HandleList)
	r.Get("/ws", hub.ServeHTTP)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server LigueTalent rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
