package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/service"
)

type billingStubStore struct {
	service.Store

	upserted *domain.Subscription
}

func (s *billingStubStore) UpsertSubscription(_ context.Context, sub *domain.Subscription) error {
	s.upserted = sub
	return nil
}

func TestBillingWebhook(t *testing.T) {
	const secret = "whsec_test"

	t.Run("valid event upserts", func(t *testing.T) {
		store := &billingStubStore{}
		webhook := NewBillingWebhook(service.New(store, 0, 0), secret)

		req := httptest.NewRequest(http.MethodPost, "/billing/webhook",
			strings.NewReader(`{"workspace_id":"ws-1","plan":"growth","status":"active","prompt_usage":10,"prompt_limit":500}`))
		req.Header.Set("X-Billing-Signature", secret)
		rec := httptest.NewRecorder()
		webhook.Handle(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, store.upserted)
		assert.Equal(t, "ws-1", store.upserted.WorkspaceID)
		assert.Equal(t, "growth", store.upserted.Plan)
	})

	t.Run("bad signature is 401", func(t *testing.T) {
		store := &billingStubStore{}
		webhook := NewBillingWebhook(service.New(store, 0, 0), secret)

		req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(`{}`))
		req.Header.Set("X-Billing-Signature", "wrong")
		rec := httptest.NewRecorder()
		webhook.Handle(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, store.upserted)
	})

	t.Run("missing workspace is 400", func(t *testing.T) {
		store := &billingStubStore{}
		webhook := NewBillingWebhook(service.New(store, 0, 0), secret)

		req := httptest.NewRequest(http.MethodPost, "/billing/webhook",
			strings.NewReader(`{"plan":"growth"}`))
		req.Header.Set("X-Billing-Signature", secret)
		rec := httptest.NewRecorder()
		webhook.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unconfigured secret disables the endpoint", func(t *testing.T) {
		store := &billingStubStore{}
		webhook := NewBillingWebhook(service.New(store, 0, 0), "")

		req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		webhook.Handle(rec, req)

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}
