package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
)

const (
	componentUp           = "up"
	componentDown         = "down"
	componentUnconfigured = "unconfigured"
)

type StorageChecker interface {
	Ping(ctx context.Context) error
}

type CRMChecker interface {
	Configured() bool
	CheckCredentials(ctx context.Context) brevo.OpResult
}

type HealthHandler struct {
	Store     StorageChecker
	CRM       CRMChecker
	StartTime time.Time
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components"`
}

func NewHealthHandler(store StorageChecker, crm CRMChecker) *HealthHandler {
	return &HealthHandler{
		Store:     store,
		CRM:       crm,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]string)

	if h.Store == nil {
		components["storage"] = componentUnconfigured
	} else if err := h.Store.Ping(r.Context()); err != nil {
		components["storage"] = componentDown
	} else {
		components["storage"] = componentUp
	}

	if h.CRM == nil || !h.CRM.Configured() {
		components["crm"] = componentUnconfigured
	} else if res := h.CRM.CheckCredentials(r.Context()); !res.Success {
		components["crm"] = componentDown
	} else {
		components["crm"] = componentUp
	}

	// Any component down degrades; every configured component down is
	// unhealthy. Unconfigured components never count against the status.
	var configured, down int
	for _, state := range components {
		if state == componentUnconfigured {
			continue
		}
		configured++
		if state == componentDown {
			down++
		}
	}
	status := "healthy"
	switch {
	case configured > 0 && down == configured:
		status = "unhealthy"
	case down > 0:
		status = "degraded"
	}

	response := HealthResponse{
		Status:     status,
		Uptime:     time.Since(h.StartTime).Round(time.Second).String(),
		Components: components,
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
