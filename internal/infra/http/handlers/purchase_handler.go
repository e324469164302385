package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/infra/http/middleware"
	"github.com/reelgrowth/lead-relay/internal/usecase"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the raw body, as sent
// by the e-commerce platform's webhook dispatcher.
const SignatureHeader = "X-WC-Webhook-Signature"

type PurchaseHandler struct {
	UC            *usecase.RecordPurchaseUseCase
	WebhookSecret string
	Logger        *zap.Logger
}

func NewPurchaseHandler(uc *usecase.RecordPurchaseUseCase, webhookSecret string, logger *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{UC: uc, WebhookSecret: webhookSecret, Logger: logger}
}

type purchaseOrder struct {
	ID      *int64 `json:"id"`
	Status  string `json:"status"`
	Billing *struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	} `json:"billing"`
}

func (h *PurchaseHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.WebhookSecret == "" {
		// Server misconfiguration, not a client error.
		h.Logger.Error("purchase webhook secret not configured")
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "failed to read request body"})
		return
	}

	if !VerifySignature(body, r.Header.Get(SignatureHeader), h.WebhookSecret) {
		writeJSON(w, http.StatusUnauthorized, apiResponse{Error: "invalid signature"})
		return
	}

	var order purchaseOrder
	if err := json.Unmarshal(body, &order); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid order payload"})
		return
	}
	switch {
	case order.ID == nil:
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "order id is required"})
		return
	case order.Status == "":
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "order status is required"})
		return
	case order.Billing == nil || strings.TrimSpace(order.Billing.Email) == "":
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "billing email is required"})
		return
	}

	out, err := h.UC.Execute(r.Context(), usecase.RecordPurchaseInput{
		OrderID: *order.ID,
		Status:  order.Status,
		Email:   order.Billing.Email,
	})
	if err != nil {
		h.Logger.Error("purchase processing failed",
			zap.Int64("order_id", *order.ID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "failed to process order"})
		return
	}

	if out.Processed {
		middleware.RecordPurchaseRecorded()
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: out.Message})
}

// Active answers connectivity checks.
func (h *PurchaseHandler) Active(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "purchase intake active"})
}

// Ping answers the bare HEAD request some webhook registrations send as a
// handshake.
func (h *PurchaseHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
