package usecase

import (
	"context"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

const defaultListLimit = 50

type ListLeadsInput struct {
	Status         string
	Tag            string
	Limit          int
	Offset         int
	IncludeMetrics bool
}

type ListLeadsOutput struct {
	Leads   []*entity.Lead
	Count   int
	Metrics *entity.Metrics
}

type ListLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	leads, err := uc.Repo.List(ctx, entity.ListFilter{
		Status: input.Status,
		Tag:    input.Tag,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	out := &ListLeadsOutput{Leads: leads, Count: len(leads)}
	if input.IncludeMetrics {
		metrics, err := uc.Repo.Metrics(ctx)
		if err != nil {
			return nil, err
		}
		out.Metrics = metrics
	}
	return out, nil
}
