package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/entity"
	"github.com/reelgrowth/lead-relay/internal/usecase"
)

type LeadsListHandler struct {
	UC     *usecase.ListLeadsUseCase
	APIKey string
	Logger *zap.Logger
}

func NewLeadsListHandler(uc *usecase.ListLeadsUseCase, apiKey string, logger *zap.Logger) *LeadsListHandler {
	return &LeadsListHandler{UC: uc, APIKey: apiKey, Logger: logger}
}

type listLeadsResponse struct {
	Success bool            `json:"success"`
	Leads   []*entity.Lead  `json:"leads"`
	Count   int             `json:"count"`
	Metrics *entity.Metrics `json:"metrics,omitempty"`
}

func (h *LeadsListHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.APIKey == "" || r.Header.Get("x-api-key") != h.APIKey {
		writeJSON(w, http.StatusUnauthorized, apiResponse{Error: "unauthorized"})
		return
	}

	q := r.URL.Query()
	input := usecase.ListLeadsInput{
		Status: q.Get("status"),
		Tag:    q.Get("tag"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		input.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		input.Offset = offset
	}
	if metrics, err := strconv.ParseBool(q.Get("metrics")); err == nil {
		input.IncludeMetrics = metrics
	}

	out, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		h.Logger.Error("lead listing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "failed to list leads"})
		return
	}

	writeJSON(w, http.StatusOK, listLeadsResponse{
		Success: true,
		Leads:   out.Leads,
		Count:   out.Count,
		Metrics: out.Metrics,
	})
}
