package queue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMailer struct {
	sentTo []string
	err    error
}

func (f *fakeMailer) SendHireNotification(to string, payload HireNotificationPayload) error {
	f.sentTo = append(f.sentTo, to)
	return f.err
}

func TestWorkerProcessSendsToConfiguredAddress(t *testing.T) {
	mailer := &fakeMailer{}
	w := NewWorker(nil, mailer, "rh@liguetalent.com")

	err := w.process(HireNotificationPayload{CandidateID: "c1", FullName: "Joana"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"rh@liguetalent.com"}, mailer.sentTo)
}

func TestWorkerProcessSkipsWithoutAddress(t *testing.T) {
	// Sem HR_NOTIFY_EMAIL: mensagem sai da fila sem tentar SMTP
	mailer := &fakeMailer{}
	w := NewWorker(nil, mailer, "")

	err := w.process(HireNotificationPayload{CandidateID: "c1"})

	assert.NoError(t, err)
	assert.Empty(t, mailer.sentTo)
}

func TestWorkerProcessPropagatesMailError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp timeout")}
	w := NewWorker(nil, mailer, "rh@liguetalent.com")

	err := w.process(HireNotificationPayload{CandidateID: "c1"})

	assert.Error(t, err)
}
