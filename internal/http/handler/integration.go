package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
)

type connectIntegrationRequest struct {
	Provider string         `json:"provider"`
	Config   map[string]any `json:"config"`
}

type updateIntegrationRequest struct {
	UpdateMask []string       `json:"update_mask"`
	Status     *string        `json:"status"`
	Config     map[string]any `json:"config"`
}

type listIntegrationsResponse struct {
	Integrations []IntegrationDTO `json:"integrations"`
}

// ConnectIntegration handles POST /api/v1/integrations.
func (s *Server) ConnectIntegration(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req connectIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	integration, err := s.svc.ConnectIntegration(r.Context(), wsID, req.Provider, req.Config)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapIntegrationToDTO(integration))
}

// GetIntegration handles GET /api/v1/integrations/{integrationID}.
func (s *Server) GetIntegration(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	integration, err := s.svc.GetIntegration(r.Context(), wsID, chi.URLParam(r, "integrationID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapIntegrationToDTO(integration))
}

// ListIntegrations handles GET /api/v1/integrations.
func (s *Server) ListIntegrations(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	integrations, err := s.svc.ListIntegrations(r.Context(), wsID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]IntegrationDTO, len(integrations))
	for i := range integrations {
		dtos[i] = mapIntegrationToDTO(&integrations[i])
	}

	response.OK(w, listIntegrationsResponse{Integrations: dtos})
}

// UpdateIntegration handles PATCH /api/v1/integrations/{integrationID}.
func (s *Server) UpdateIntegration(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updateIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	params := domain.UpdateIntegrationParams{
		IntegrationID: chi.URLParam(r, "integrationID"),
		UpdateMask:    req.UpdateMask,
		Config:        req.Config,
	}

	if req.Status != nil {
		status, err := domain.NewIntegrationStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		params.Status = &status
	}

	integration, err := s.svc.UpdateIntegration(r.Context(), wsID, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapIntegrationToDTO(integration))
}

// DisconnectIntegration handles DELETE /api/v1/integrations/{integrationID}.
func (s *Server) DisconnectIntegration(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DisconnectIntegration(r.Context(), wsID, chi.URLParam(r, "integrationID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
