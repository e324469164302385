package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/infra/http/middleware"
	"github.com/reelgrowth/lead-relay/internal/usecase"
)

type LeadHandler struct {
	UC          *usecase.CaptureLeadUseCase
	APIKey      string
	Logger      *zap.Logger
	rateLimiter *RateLimiter
}

func NewLeadHandler(uc *usecase.CaptureLeadUseCase, apiKey string, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		UC:          uc,
		APIKey:      apiKey,
		Logger:      logger,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	if h.APIKey == "" || r.Header.Get("x-api-key") != h.APIKey {
		writeJSON(w, http.StatusUnauthorized, apiResponse{Error: "unauthorized"})
		return
	}

	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, apiResponse{Error: "too many requests"})
		return
	}

	var input usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid JSON"})
		return
	}

	out, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		var validationErr usecase.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, apiResponse{Error: validationErr.Error()})
			return
		}
		var crmErr *usecase.CRMForwardError
		if errors.As(err, &crmErr) {
			middleware.RecordIntegrationError("crm")
			writeJSON(w, http.StatusInternalServerError, apiResponse{
				Error:  crmErr.Message,
				LeadID: crmErr.LeadID,
			})
			return
		}
		h.Logger.Error("lead capture failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "failed to capture lead"})
		return
	}

	middleware.RecordLeadCaptured(string(out.Tag))
	writeJSON(w, http.StatusOK, apiResponse{Success: true, LeadID: out.LeadID})
}

// Active answers connectivity checks from the form pipeline.
func (h *LeadHandler) Active(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "lead intake active"})
}
