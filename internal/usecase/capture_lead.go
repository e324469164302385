package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/entity"
	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
)

type CaptureLeadInput struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Source string `json:"source,omitempty"`
	Tag    string `json:"tag,omitempty"`
}

type CaptureLeadOutput struct {
	LeadID string
	Tag    entity.LeadTag
}

type CaptureLeadUseCase struct {
	Repo          entity.LeadRepositoryInterface
	CRM           CRMConnectorInterface
	DefaultSource string
	Logger        *zap.Logger
}

func NewCaptureLeadUseCase(
	repo entity.LeadRepositoryInterface,
	crm CRMConnectorInterface,
	defaultSource string,
	logger *zap.Logger,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Repo:          repo,
		CRM:           crm,
		DefaultSource: defaultSource,
		Logger:        logger,
	}
}

// Execute runs validate -> persist -> forward. The store write comes before
// the CRM call so a lead row exists even when the forward fails; the error
// status on that row is observability, not a dead end.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	email := NormalizeEmail(input.Email)
	tag := entity.TagGeneral
	if input.Tag != "" {
		tag = entity.LeadTag(input.Tag)
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = uc.DefaultSource
	}

	lead, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		lead = &entity.Lead{
			Email:  email,
			Name:   strings.TrimSpace(input.Name),
			Phone:  strings.TrimSpace(input.Phone),
			Source: source,
			Tag:    tag,
		}
		if err := uc.Repo.Create(ctx, lead); err != nil {
			return nil, err
		}
	}

	res := uc.CRM.UpsertContact(ctx, brevo.UpsertContactInput{
		Email:  email,
		Name:   strings.TrimSpace(input.Name),
		Phone:  strings.TrimSpace(input.Phone),
		Source: source,
		Tag:    tag,
	})
	if !res.Success {
		uc.Logger.Warn("crm upsert failed",
			zap.String("lead_id", lead.ID),
			zap.String("error", res.Error))
		if _, terr := uc.Repo.Transition(ctx, lead.ID, entity.StatusError, nil); terr != nil {
			uc.Logger.Error("failed to record error status",
				zap.String("lead_id", lead.ID), zap.Error(terr))
		}
		return nil, &CRMForwardError{LeadID: lead.ID, Message: res.Error}
	}

	var patch *entity.LeadPatch
	if res.ContactID != "" {
		patch = &entity.LeadPatch{CRMContactID: res.ContactID}
	}
	if _, err := uc.Repo.Transition(ctx, lead.ID, entity.StatusSubscribed, patch); err != nil {
		return nil, err
	}

	uc.Logger.Info("lead captured",
		zap.String("lead_id", lead.ID),
		zap.String("tag", string(tag)))

	return &CaptureLeadOutput{LeadID: lead.ID, Tag: lead.Tag}, nil
}
