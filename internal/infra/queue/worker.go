package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-talent/internal/infra/http/middleware"
)

// HireMailer define o contrato do envio de email de contratação.
type HireMailer interface {
	SendHireNotification(to string, payload HireNotificationPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Mailer   HireMailer
	NotifyTo string // destino do aviso (time de recrutamento)
}

func NewWorker(ch *amqp.Channel, mailer HireMailer, notifyTo string) *Worker {
	return &Worker{
		Channel:  ch,
		Mailer:   mailer,
		NotifyTo: notifyTo,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload HireNotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Contratação recebida: %s (%s)", payload.FullName, payload.CandidateID)

			if err := w.process(payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao enviar notificação: %s", err)
				middleware.RecordNotificationError("smtp")
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Time de recrutamento avisado sobre %s", payload.FullName)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload HireNotificationPayload) error {
	if w.NotifyTo == "" {
		// Sem destino configurado: só loga e tira da fila.
		log.Printf("⚠️ HR_NOTIFY_EMAIL não configurado, pulando email de %s", payload.CandidateID)
		return nil
	}
	return w.Mailer.SendHireNotification(w.NotifyTo, payload)
}
