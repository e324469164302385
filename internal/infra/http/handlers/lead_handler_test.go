package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/entity"
	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
	"github.com/reelgrowth/lead-relay/internal/usecase"
)

const testAPIKey = "test-api-key"

func newLeadHandler(repo *MockLeadRepository, crm *MockCRMConnector) *LeadHandler {
	uc := usecase.NewCaptureLeadUseCase(repo, crm, "website", zap.NewNop())
	return NewLeadHandler(uc, testAPIKey, zap.NewNop())
}

func postLead(h *LeadHandler, apiKey string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/lead", bytes.NewReader(body))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	w := httptest.NewRecorder()
	h.Capture(w, req)
	return w
}

func TestLeadHandlerBadAPIKey(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMConnector)
	h := newLeadHandler(repo, crm)

	w := postLead(h, "wrong-key", map[string]string{"email": "ana@example.com"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	crm.AssertNotCalled(t, "UpsertContact", mock.Anything, mock.Anything)
}

func TestLeadHandlerMissingAPIKey(t *testing.T) {
	h := newLeadHandler(new(MockLeadRepository), new(MockCRMConnector))

	w := postLead(h, "", map[string]string{"email": "ana@example.com"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeadHandlerSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMConnector)
	h := newLeadHandler(repo, crm)

	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Lead).ID = "lead-1"
		}).Return(nil)
	crm.On("UpsertContact", mock.Anything, mock.Anything).
		Return(brevo.UpsertContactResult{Success: true, ContactID: "42"})
	repo.On("Transition", mock.Anything, "lead-1", entity.StatusSubscribed, mock.Anything).
		Return(&entity.Lead{ID: "lead-1", Status: entity.StatusSubscribed}, nil)

	w := postLead(h, testAPIKey, map[string]string{
		"email": "ana@example.com",
		"name":  "Ana Souza",
		"tag":   "reel-fitness",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		LeadID  string `json:"leadId"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "lead-1", resp.LeadID)
}

func TestLeadHandlerInvalidJSON(t *testing.T) {
	h := newLeadHandler(new(MockLeadRepository), new(MockCRMConnector))

	req := httptest.NewRequest("POST", "/api/lead", bytes.NewReader([]byte("{not json")))
	req.Header.Set("x-api-key", testAPIKey)
	w := httptest.NewRecorder()
	h.Capture(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandlerValidationFailureNamesField(t *testing.T) {
	h := newLeadHandler(new(MockLeadRepository), new(MockCRMConnector))

	w := postLead(h, testAPIKey, map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestLeadHandlerCRMFailureReturnsLeadID(t *testing.T) {
	repo := new(MockLeadRepository)
	crm := new(MockCRMConnector)
	h := newLeadHandler(repo, crm)

	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Lead).ID = "lead-1"
		}).Return(nil)
	crm.On("UpsertContact", mock.Anything, mock.Anything).
		Return(brevo.UpsertContactResult{Success: false, Error: "invalid api key"})
	repo.On("Transition", mock.Anything, "lead-1", entity.StatusError, mock.Anything).
		Return(&entity.Lead{ID: "lead-1", Status: entity.StatusError}, nil)

	w := postLead(h, testAPIKey, map[string]string{"email": "ana@example.com"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		LeadID  string `json:"leadId"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid api key", resp.Error)
	assert.Equal(t, "lead-1", resp.LeadID)
}

func TestLeadHandlerActive(t *testing.T) {
	h := newLeadHandler(new(MockLeadRepository), new(MockCRMConnector))

	req := httptest.NewRequest("GET", "/api/lead", nil)
	w := httptest.NewRecorder()
	h.Active(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "active")
}
