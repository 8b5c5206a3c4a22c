package handler

import (
	"net/http"

	"github.com/seenlyhq/seenly/internal/http/response"
)

// GetSubscription handles GET /api/v1/subscription.
// Returns the cached billing state; a workspace with no billing history reads
// as the free plan.
func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	sub, err := s.svc.GetSubscription(r.Context(), wsID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapSubscriptionToDTO(sub))
}
