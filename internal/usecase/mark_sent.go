package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"text/template"
	"time"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
	"github.com/jojiShiotsuki/personalApp-sub001/internal/infra/queue"
)

func NewMarkSentUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	templateRepo entity.TemplateRepositoryInterface,
	producer QueueProducerInterface,
) *MarkSentUseCase {
	return &MarkSentUseCase{
		ProspectRepo: prospectRepo,
		TemplateRepo: templateRepo,
		Queue:        producer,
	}
}

func (uc *MarkSentUseCase) Execute(ctx context.Context, prospectID string) (*MarkSentOutput, error) {
	// 1. Load the prospect and check it can still receive a touch
	prospect, err := uc.ProspectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, NewDomainError(CodeProspectNotFound, "prospect not found")
	}

	if prospect.SequenceExhausted() {
		return nil, NewDomainError(CodeSequenceComplete, "all 5 steps already sent")
	}
	if !prospect.CanMarkSent() {
		return nil, NewDomainError(CodeInvalidStatus, fmt.Sprintf("cannot send from status %s", prospect.Status))
	}

	// 2. Resolve the template for the step being sent
	tmpl, err := uc.TemplateRepo.FindByCampaignStep(ctx, prospect.CampaignID, prospect.CurrentStep)
	if err != nil || tmpl == nil {
		return nil, NewDomainError(CodeTemplateNotFound,
			fmt.Sprintf("no template for step %d of this campaign", prospect.CurrentStep))
	}

	subject, body, err := renderStep(tmpl, prospect)
	if err != nil {
		return nil, NewTechnicalError("TEMPLATE_RENDER_FAILED", err.Error())
	}

	// 3. Advance atomically. The repository guards on status, so a concurrent
	// reply makes this a no-op instead of being overwritten. No job is
	// published until the cadence has accepted the touch.
	nextAction := uc.nextActionDate(ctx, prospect)
	updated, err := uc.ProspectRepo.AdvanceStep(ctx, prospect.ID, nextAction)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			return nil, NewDomainError(CodeInvalidStatus, "prospect changed state, reload and retry")
		}
		return nil, err
	}

	// 4. Publish the send job. EMAIL needs an address; LINKEDIN touches are
	// delivered manually, the job only records them.
	queued := false
	if uc.Queue != nil && (tmpl.Channel == entity.ChannelLinkedIn || prospect.Email != "") {
		payload := queue.SendStepPayload{
			ProspectID:   prospect.ID,
			CampaignID:   prospect.CampaignID,
			Step:         prospect.CurrentStep,
			Channel:      tmpl.Channel,
			To:           prospect.Email,
			BusinessName: prospect.BusinessName,
			Subject:      subject,
			Body:         body,
		}
		if err := uc.Queue.PublishSendStep(ctx, payload); err != nil {
			return nil, NewTechnicalError("QUEUE_PUBLISH_FAILED",
				fmt.Sprintf("step recorded but delivery was not queued: %s", err.Error()))
		}
		queued = true
	}

	log.Printf("📤 Step %d sent for %s (%s), next action %v", prospect.CurrentStep, prospect.BusinessName, tmpl.Channel, nextAction)

	return &MarkSentOutput{
		ProspectID:      updated.ID,
		Status:          updated.Status,
		CurrentStep:     updated.CurrentStep,
		LastContactedAt: updated.LastContactedAt,
		NextActionDate:  updated.NextActionDate,
		Channel:         tmpl.Channel,
		Queued:          queued,
	}, nil
}

// nextActionDate computes when the following step becomes due. Sending the
// last step leaves it nil, which marks the sequence exhausted.
func (uc *MarkSentUseCase) nextActionDate(ctx context.Context, p *entity.Prospect) *time.Time {
	if p.CurrentStep >= entity.MaxStep {
		return nil
	}

	nextStep := p.CurrentStep + 1
	waitDays := entity.DefaultWaitDaysFor(nextStep)
	if next, err := uc.TemplateRepo.FindByCampaignStep(ctx, p.CampaignID, nextStep); err == nil && next != nil {
		waitDays = next.WaitDays
	}

	due := time.Now().AddDate(0, 0, waitDays)
	return &due
}

func renderStep(tmpl *entity.StepTemplate, p *entity.Prospect) (string, string, error) {
	subject, err := renderText("subject", tmpl.Subject, p)
	if err != nil {
		return "", "", err
	}
	body, err := renderText("body", tmpl.Body, p)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderText(name, text string, p *entity.Prospect) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
