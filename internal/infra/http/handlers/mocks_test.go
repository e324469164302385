package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reelgrowth/lead-relay/internal/entity"
	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Transition(ctx context.Context, id string, status entity.LeadStatus, patch *entity.LeadPatch) (*entity.Lead, error) {
	args := m.Called(ctx, id, status, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) MarkPurchased(ctx context.Context, email string, orderID int64) (*entity.Lead, error) {
	args := m.Called(ctx, email, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.ListFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Metrics(ctx context.Context) (*entity.Metrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Metrics), args.Error(1)
}

func (m *MockLeadRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCRMConnector struct {
	mock.Mock
}

func (m *MockCRMConnector) UpsertContact(ctx context.Context, input brevo.UpsertContactInput) brevo.UpsertContactResult {
	args := m.Called(ctx, input)
	return args.Get(0).(brevo.UpsertContactResult)
}

func (m *MockCRMConnector) MarkPurchased(ctx context.Context, email string, orderID int64) brevo.OpResult {
	args := m.Called(ctx, email, orderID)
	return args.Get(0).(brevo.OpResult)
}
