package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/seenlyhq/seenly/internal/http/response"
	"github.com/seenlyhq/seenly/internal/service"
)

// billingSignatureHeader carries the shared webhook secret from the billing
// provider. The webhook sits outside API-key auth.
const billingSignatureHeader = "X-Billing-Signature"

type billingEventRequest struct {
	WorkspaceID      string     `json:"workspace_id"`
	Plan             string     `json:"plan"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	PromptUsage      int        `json:"prompt_usage"`
	PromptLimit      int        `json:"prompt_limit"`
}

// BillingWebhook handles subscription events pushed by the billing provider.
type BillingWebhook struct {
	svc    *service.Service
	secret string
}

// NewBillingWebhook creates the webhook handler. An empty secret disables the
// endpoint rather than accepting unsigned events.
func NewBillingWebhook(svc *service.Service, secret string) *BillingWebhook {
	return &BillingWebhook{
		svc:    svc,
		secret: secret,
	}
}

// Handle processes POST /billing/webhook.
func (h *BillingWebhook) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		response.Error(w, "DISABLED", "billing webhook is not configured", http.StatusNotImplemented)
		return
	}

	sig := r.Header.Get(billingSignatureHeader)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(h.secret)) != 1 {
		slog.WarnContext(r.Context(), "billing webhook signature mismatch")
		response.Unauthorized(w, "invalid webhook signature")
		return
	}

	var req billingEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	err := h.svc.HandleBillingEvent(r.Context(), service.BillingEvent{
		WorkspaceID:      req.WorkspaceID,
		Plan:             req.Plan,
		Status:           req.Status,
		CurrentPeriodEnd: req.CurrentPeriodEnd,
		PromptUsage:      req.PromptUsage,
		PromptLimit:      req.PromptLimit,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "billing event applied",
		"workspace_id", req.WorkspaceID,
		"plan", req.Plan,
		"status", req.Status)

	response.NoContent(w)
}
