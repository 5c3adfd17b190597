package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

const (
	ResponseInterested    = "INTERESTED"
	ResponseNotInterested = "NOT_INTERESTED"
	ResponseOther         = "OTHER"
)

func NewMarkRepliedUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	contactRepo entity.ContactRepositoryInterface,
	dealRepo entity.DealRepository,
) *MarkRepliedUseCase {
	return &MarkRepliedUseCase{
		ProspectRepo: prospectRepo,
		ContactRepo:  contactRepo,
		DealRepo:     dealRepo,
	}
}

func (uc *MarkRepliedUseCase) Execute(ctx context.Context, prospectID string, input MarkRepliedInput) (*MarkRepliedOutput, error) {
	// 1. Load the prospect; a reply only makes sense after a touch
	prospect, err := uc.ProspectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, NewDomainError(CodeProspectNotFound, "prospect not found")
	}

	if !prospect.ContactedOnce() {
		return nil, NewDomainError(CodeInvalidStatus, "prospect has not been contacted yet")
	}

	// 2. Map the response to the target status
	var target string
	switch input.ResponseType {
	case ResponseInterested:
		if input.CreateDeal {
			target = entity.StatusConverted
		} else {
			target = entity.StatusReplied
		}
	case ResponseNotInterested:
		target = entity.StatusNotInterested
	case ResponseOther:
		target = entity.StatusReplied
	default:
		return nil, NewDomainError("INVALID_RESPONSE_TYPE", "response_type must be INTERESTED, NOT_INTERESTED or OTHER")
	}

	if !prospect.CanTransitionTo(target) {
		return nil, NewDomainError(CodeInvalidStatus,
			fmt.Sprintf("cannot move prospect from %s to %s", prospect.Status, target))
	}

	output := &MarkRepliedOutput{ProspectID: prospect.ID, Status: target}

	// 3. Simple outcomes need a single write
	if target != entity.StatusConverted {
		if err := uc.ProspectRepo.SetOutcome(ctx, prospect.ID, target, input.Notes); err != nil {
			return nil, err
		}
		return output, nil
	}

	// 4. Conversion creates a contact and a deal together with the status
	// change; any failure undoes the earlier writes
	contact, err := entity.NewContact(
		contactNameOrBusiness(prospect),
		prospect.Email,
		prospect.Phone,
		prospect.BusinessName,
		"",
		entity.SourceOutreach,
	)
	if err != nil {
		return nil, NewTechnicalError("CONTACT_BUILD_FAILED", err.Error())
	}
	contact.ProspectID = prospect.ID

	title := input.DealTitle
	if title == "" {
		title = prospect.BusinessName
	}
	deal, err := entity.NewDeal(title, prospect.BusinessName, contact.ID, input.DealValueCents)
	if err != nil {
		return nil, NewTechnicalError("DEAL_BUILD_FAILED", err.Error())
	}
	deal.Stage = entity.StageQualified

	tx := NewTransaction()

	tx.AddOperation("create_contact", func(ctx context.Context) error {
		return uc.ContactRepo.Create(ctx, contact)
	})
	tx.AddCompensation("delete_contact", func(ctx context.Context) error {
		return uc.ContactRepo.Delete(ctx, contact.ID)
	})

	tx.AddOperation("create_deal", func(ctx context.Context) error {
		return uc.DealRepo.Create(ctx, deal)
	})
	tx.AddCompensation("delete_deal", func(ctx context.Context) error {
		return uc.DealRepo.Delete(ctx, deal.ID)
	})

	tx.AddOperation("convert_prospect", func(ctx context.Context) error {
		return uc.ProspectRepo.SetOutcome(ctx, prospect.ID, entity.StatusConverted, input.Notes)
	})

	if err := tx.Execute(ctx); err != nil {
		return nil, NewTechnicalError("CONVERSION_FAILED", err.Error())
	}

	log.Printf("🎉 Prospect %s converted: contact %s, deal %s", prospect.BusinessName, contact.ID, deal.ID)

	output.ContactID = contact.ID
	output.DealID = deal.ID
	return output, nil
}

func contactNameOrBusiness(p *entity.Prospect) string {
	if p.ContactName != "" {
		return p.ContactName
	}
	return p.BusinessName
}
