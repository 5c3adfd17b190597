package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOutreach(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

func TestProcessMessageDeliversEmailJobs(t *testing.T) {
	mailer := new(MockEmailSender)
	mailer.On("SendOutreach", "jo@acme.com", "Quick question", "Hi Jo,").Return(nil)

	worker := NewWorker(nil, mailer)
	err := worker.processMessage(context.Background(), SendStepPayload{
		ProspectID:   "prospect-1",
		Step:         1,
		Channel:      "EMAIL",
		To:           "jo@acme.com",
		BusinessName: "Acme Plumbing",
		Subject:      "Quick question",
		Body:         "Hi Jo,",
	})

	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestProcessMessagePropagatesDeliveryFailure(t *testing.T) {
	mailer := new(MockEmailSender)
	mailer.On("SendOutreach", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	worker := NewWorker(nil, mailer)
	err := worker.processMessage(context.Background(), SendStepPayload{
		Channel: "EMAIL",
		To:      "jo@acme.com",
	})

	assert.Error(t, err)
}

func TestProcessMessageDropsEmailJobWithoutAddress(t *testing.T) {
	mailer := new(MockEmailSender)

	worker := NewWorker(nil, mailer)
	err := worker.processMessage(context.Background(), SendStepPayload{
		Channel:      "EMAIL",
		BusinessName: "Acme Plumbing",
	})

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessMessageLinkedInJobsOnlyLog(t *testing.T) {
	mailer := new(MockEmailSender)

	worker := NewWorker(nil, mailer)
	err := worker.processMessage(context.Background(), SendStepPayload{
		Channel:      "LINKEDIN",
		BusinessName: "Acme Plumbing",
		Step:         2,
	})

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessMessageUnknownChannelDrains(t *testing.T) {
	worker := NewWorker(nil, new(MockEmailSender))

	err := worker.processMessage(context.Background(), SendStepPayload{Channel: "FAX"})
	assert.NoError(t, err)
}
