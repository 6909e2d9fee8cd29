package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-talent/internal/entity"
	"github.com/xavierca1/ligue-talent/internal/infra/queue"
)

// MockCandidateRepository
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Upsert(ctx context.Context, c *entity.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindAll(ctx context.Context) ([]entity.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) FindHired(ctx context.Context) ([]entity.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

// MockNotifier registra os broadcasts recebidos
type MockNotifier struct {
	calls []string
}

func (m *MockNotifier) BroadcastChange(candidateID string, changedAt time.Time) {
	m.calls = append(m.calls, candidateID)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishHireNotification(ctx context.Context, payload queue.HireNotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// ============ TESTES DO INGEST ============

func TestIngestMissingIDRejectedBeforeMutation(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockNotifier := &MockNotifier{}
	mockQueue := new(MockQueueProducer)

	uc := NewIngestCandidateUseCase(mockRepo, mockNotifier, mockQueue)

	out, err := uc.Execute(context.Background(), IngestCandidateInput{
		FullName: "Sem ID",
		Source:   "LinkedIn",
	})

	assert.Nil(t, out)
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Nada pode ter sido gravado nem notificado
	mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.Empty(t, mockNotifier.calls)
}

func TestIngestSuccessUpsertsAndBroadcasts(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockNotifier := &MockNotifier{}
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	uc := NewIngestCandidateUseCase(mockRepo, mockNotifier, mockQueue)

	out, err := uc.Execute(context.Background(), IngestCandidateInput{
		CandidateID:    "c1",
		FullName:       "Joana Teste",
		Source:         "LinkedIn",
		InterviewStage: entity.StageInterview,
	})

	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "c1", out.CandidateID)
	assert.Equal(t, []string{"c1"}, mockNotifier.calls)

	// Sem hire_date não publica na fila
	mockQueue.AssertNotCalled(t, "PublishHireNotification", mock.Anything, mock.Anything)
}

func TestIngestHirePublishesNotification(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockNotifier := &MockNotifier{}
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockQueue.On("PublishHireNotification", mock.Anything, mock.MatchedBy(func(p queue.HireNotificationPayload) bool {
		return p.CandidateID == "c2" && p.HireDate == "2024-04-01" && p.Origin == "WEBHOOK_SHEET"
	})).Return(nil)

	uc := NewIngestCandidateUseCase(mockRepo, mockNotifier, mockQueue)

	out, err := uc.Execute(context.Background(), IngestCandidateInput{
		CandidateID:    "c2",
		FullName:       "Carlos Exemplo",
		InterviewStage: entity.StageHired,
		HireDate:       "2024-04-01",
		Touchpoints:    float64(6),
	})

	assert.NoError(t, err)
	assert.True(t, out.Success)
	mockQueue.AssertExpectations(t)
}

func TestIngestQueueFailureDoesNotFailIngest(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockNotifier := &MockNotifier{}
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockQueue.On("PublishHireNotification", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uc := NewIngestCandidateUseCase(mockRepo, mockNotifier, mockQueue)

	out, err := uc.Execute(context.Background(), IngestCandidateInput{
		CandidateID: "c3",
		HireDate:    "2024-05-01",
	})

	// Fila caída não derruba o ingest: candidato salvo, broadcast feito
	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, []string{"c3"}, mockNotifier.calls)
}

func TestIngestStorageErrorSurfaces(t *testing.T) {
	mockRepo := new(MockCandidateRepository)
	mockNotifier := &MockNotifier{}

	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := NewIngestCandidateUseCase(mockRepo, mockNotifier, nil)

	out, err := uc.Execute(context.Background(), IngestCandidateInput{CandidateID: "c4"})

	assert.Nil(t, out)
	assert.True(t, IsStorageError(err))
	// Broadcast só depois de gravar com sucesso
	assert.Empty(t, mockNotifier.calls)
}

func TestIngestTouchpointsCoercion(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  *int
	}{
		{"número", float64(5), tp(5)},
		{"string numérica", "7", tp(7)},
		{"string com espaços", " 3 ", tp(3)},
		{"string vazia", "", nil},
		{"não numérico", "muitos", nil},
		{"negativo", float64(-2), nil},
		{"ausente", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockCandidateRepository)

			var got *entity.Candidate
			mockRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				got = args.Get(1).(*entity.Candidate)
			}).Return(nil)

			uc := NewIngestCandidateUseCase(mockRepo, nil, nil)

			_, err := uc.Execute(context.Background(), IngestCandidateInput{
				CandidateID: "c1",
				Touchpoints: tc.input,
			})

			assert.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got.Touchpoints)
			} else {
				assert.NotNil(t, got.Touchpoints)
				assert.Equal(t, *tc.want, *got.Touchpoints)
			}
		})
	}
}
