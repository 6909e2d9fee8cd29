package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-talent/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

func (s *EmailSender) SendHireNotification(to string, payload queue.HireNotificationPayload) error {
	data := HireEmailData{
		FullName: payload.FullName,
		Role:     payload.Role,
		Source:   payload.Source,
		HireDate: payload.HireDate,
	}
	if payload.Touchpoints != nil {
		data.Touchpoints = strconv.Itoa(*payload.Touchpoints)
	}

	tmplPath := filepath.Join("templates", "hired.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@liguetalent.com")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🎉 Contratação fechada: %s", payload.FullName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
