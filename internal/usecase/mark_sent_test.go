package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/queue"
)

func queuedProspect() *entity.Prospect {
	return &entity.Prospect{
		ID:           "prospect-1",
		CampaignID:   "camp-1",
		BusinessName: "Acme Plumbing",
		ContactName:  "Jo",
		Email:        "jo@acme.com",
		Status:       entity.StatusQueued,
		CurrentStep:  1,
	}
}

func TestMarkSentPublishesJobAndAdvancesStep(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)
	producer := new(MockQueueProducer)

	prospect := queuedProspect()
	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(prospect, nil)

	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", 1).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       1,
		Channel:    entity.ChannelEmail,
		Subject:    "Quick question for {{.BusinessName}}",
		Body:       "Hi {{.ContactName}},",
	}, nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", 2).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       2,
		Channel:    entity.ChannelEmail,
		WaitDays:   3,
	}, nil)

	producer.On("PublishSendStep", mock.Anything, mock.MatchedBy(func(p queue.SendStepPayload) bool {
		return p.ProspectID == "prospect-1" &&
			p.Step == 1 &&
			p.Channel == entity.ChannelEmail &&
			p.To == "jo@acme.com" &&
			p.Subject == "Quick question for Acme Plumbing" &&
			p.Body == "Hi Jo,"
	})).Return(nil)

	now := time.Now()
	advanced := queuedProspect()
	advanced.Status = entity.StatusInSequence
	advanced.CurrentStep = 2
	advanced.LastContactedAt = &now
	prospectRepo.On("AdvanceStep", mock.Anything, "prospect-1", mock.MatchedBy(func(next *time.Time) bool {
		if next == nil {
			return false
		}
		// Step 2 waits 3 days after the step 1 send.
		expected := time.Now().AddDate(0, 0, 3)
		return next.Sub(expected) < time.Minute && expected.Sub(*next) < time.Minute
	})).Return(advanced, nil)

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	output, err := uc.Execute(context.Background(), "prospect-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusInSequence, output.Status)
	assert.Equal(t, 2, output.CurrentStep)
	assert.True(t, output.Queued)
	producer.AssertExpectations(t)
	prospectRepo.AssertExpectations(t)
}

func TestMarkSentLastStepClearsNextAction(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)
	producer := new(MockQueueProducer)

	now := time.Now()
	prospect := queuedProspect()
	prospect.Status = entity.StatusInSequence
	prospect.CurrentStep = entity.MaxStep
	prospect.LastContactedAt = &now
	prospect.NextActionDate = &now // step 5 still pending

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(prospect, nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", entity.MaxStep).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       entity.MaxStep,
		Channel:    entity.ChannelEmail,
		Subject:    "Last try",
		Body:       "Closing the loop.",
	}, nil)
	producer.On("PublishSendStep", mock.Anything, mock.Anything).Return(nil)

	exhausted := queuedProspect()
	exhausted.Status = entity.StatusInSequence
	exhausted.CurrentStep = entity.MaxStep
	exhausted.LastContactedAt = &now
	prospectRepo.On("AdvanceStep", mock.Anything, "prospect-1", (*time.Time)(nil)).Return(exhausted, nil)

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	output, err := uc.Execute(context.Background(), "prospect-1")

	assert.NoError(t, err)
	assert.Nil(t, output.NextActionDate)
	prospectRepo.AssertExpectations(t)
}

func TestMarkSentRejectsExhaustedSequence(t *testing.T) {
	prospectRepo := new(MockProspectRepository)

	now := time.Now()
	prospect := queuedProspect()
	prospect.Status = entity.StatusInSequence
	prospect.CurrentStep = entity.MaxStep
	prospect.LastContactedAt = &now
	prospect.NextActionDate = nil

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(prospect, nil)

	uc := NewMarkSentUseCase(prospectRepo, new(MockTemplateRepository), new(MockQueueProducer))
	_, err := uc.Execute(context.Background(), "prospect-1")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeSequenceComplete, domainErr.Code)
}

func TestMarkSentRejectsTerminalStatus(t *testing.T) {
	for _, status := range []string{entity.StatusReplied, entity.StatusNotInterested, entity.StatusConverted} {
		prospectRepo := new(MockProspectRepository)
		prospect := queuedProspect()
		prospect.Status = status
		prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(prospect, nil)

		uc := NewMarkSentUseCase(prospectRepo, new(MockTemplateRepository), new(MockQueueProducer))
		_, err := uc.Execute(context.Background(), "prospect-1")

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr, "status %s", status)
		assert.Equal(t, CodeInvalidStatus, domainErr.Code)
	}
}

func TestMarkSentWithoutTemplateForStep(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(queuedProspect(), nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", 1).Return(nil, entity.ErrTemplateNotFound)

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, new(MockQueueProducer))
	_, err := uc.Execute(context.Background(), "prospect-1")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeTemplateNotFound, domainErr.Code)
}

func TestMarkSentEmailStepWithoutAddressSkipsQueue(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)
	producer := new(MockQueueProducer)

	prospect := queuedProspect()
	prospect.Email = ""
	prospect.Phone = "512-555-0100"

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(prospect, nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", mock.Anything).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       1,
		Channel:    entity.ChannelEmail,
		Subject:    "Hello",
		Body:       "Hi",
	}, nil)

	advanced := queuedProspect()
	advanced.Status = entity.StatusInSequence
	advanced.CurrentStep = 2
	prospectRepo.On("AdvanceStep", mock.Anything, "prospect-1", mock.Anything).Return(advanced, nil)

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	output, err := uc.Execute(context.Background(), "prospect-1")

	assert.NoError(t, err)
	assert.False(t, output.Queued)
	producer.AssertNotCalled(t, "PublishSendStep", mock.Anything, mock.Anything)
}

func TestMarkSentConcurrentReplySkipsQueue(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)
	producer := new(MockQueueProducer)

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(queuedProspect(), nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", mock.Anything).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       1,
		Channel:    entity.ChannelEmail,
		Subject:    "Hello",
		Body:       "Hi",
	}, nil)
	// The guarded UPDATE matched no row: the prospect replied in between.
	prospectRepo.On("AdvanceStep", mock.Anything, "prospect-1", mock.Anything).Return(nil, entity.ErrProspectNotFound)

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	_, err := uc.Execute(context.Background(), "prospect-1")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeInvalidStatus, domainErr.Code)
	producer.AssertNotCalled(t, "PublishSendStep", mock.Anything, mock.Anything)
}

func TestMarkSentQueuePublishFailureSurfaces(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	templateRepo := new(MockTemplateRepository)
	producer := new(MockQueueProducer)

	prospectRepo.On("FindByID", mock.Anything, "prospect-1").Return(queuedProspect(), nil)
	templateRepo.On("FindByCampaignStep", mock.Anything, "camp-1", mock.Anything).Return(&entity.StepTemplate{
		CampaignID: "camp-1",
		Step:       1,
		Channel:    entity.ChannelEmail,
		Subject:    "Hello",
		Body:       "Hi",
	}, nil)

	advanced := queuedProspect()
	advanced.Status = entity.StatusInSequence
	advanced.CurrentStep = 2
	prospectRepo.On("AdvanceStep", mock.Anything, "prospect-1", mock.Anything).Return(advanced, nil)
	producer.On("PublishSendStep", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uc := NewMarkSentUseCase(prospectRepo, templateRepo, producer)
	_, err := uc.Execute(context.Background(), "prospect-1")

	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, "QUEUE_PUBLISH_FAILED", techErr.Code)
}
