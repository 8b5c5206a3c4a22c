package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
)

type createPromptRequest struct {
	Text   string `json:"text"`
	Engine string `json:"engine"`
}

type updatePromptRequest struct {
	UpdateMask []string `json:"update_mask"`
	Text       *string  `json:"text"`
	Engine     *string  `json:"engine"`
	IsActive   *bool    `json:"is_active"`
}

type listPromptsResponse struct {
	Prompts []PromptDTO `json:"prompts"`
}

// CreatePrompt handles POST /api/v1/prompts.
func (s *Server) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req createPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	prompt, err := s.svc.CreatePrompt(r.Context(), wsID, req.Text, req.Engine)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapPromptToDTO(prompt))
}

// GetPrompt handles GET /api/v1/prompts/{promptID}.
func (s *Server) GetPrompt(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	prompt, err := s.svc.GetPrompt(r.Context(), wsID, chi.URLParam(r, "promptID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapPromptToDTO(prompt))
}

// ListPrompts handles GET /api/v1/prompts.
func (s *Server) ListPrompts(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	prompts, err := s.svc.ListPrompts(r.Context(), wsID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]PromptDTO, len(prompts))
	for i := range prompts {
		dtos[i] = mapPromptToDTO(&prompts[i])
	}

	response.OK(w, listPromptsResponse{Prompts: dtos})
}

// UpdatePrompt handles PATCH /api/v1/prompts/{promptID}.
func (s *Server) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	prompt, err := s.svc.UpdatePrompt(r.Context(), wsID, domain.UpdatePromptParams{
		PromptID:   chi.URLParam(r, "promptID"),
		UpdateMask: req.UpdateMask,
		Text:       req.Text,
		Engine:     req.Engine,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapPromptToDTO(prompt))
}

// DeletePrompt handles DELETE /api/v1/prompts/{promptID}.
func (s *Server) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeletePrompt(r.Context(), wsID, chi.URLParam(r, "promptID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
