package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
)

type createContentRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status"`
}

type updateContentRequest struct {
	UpdateMask  []string `json:"update_mask"`
	Title       *string  `json:"title"`
	Body        *string  `json:"body"`
	Status      *string  `json:"status"`
	AssetObject *string  `json:"asset_object"`
}

type listContentResponse struct {
	Content []ContentDTO `json:"content"`
}

// CreateContent handles POST /api/v1/brands/{brandID}/content.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req createContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	content, err := s.svc.CreateContent(r.Context(), wsID, chi.URLParam(r, "brandID"), req.Title, req.Body, req.Status)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapContentToDTO(content))
}

// GetContent handles GET /api/v1/content/{contentID}.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	content, err := s.svc.GetContent(r.Context(), wsID, chi.URLParam(r, "contentID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapContentToDTO(content))
}

// ListContent handles GET /api/v1/brands/{brandID}/content.
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	content, err := s.svc.ListContent(r.Context(), wsID, chi.URLParam(r, "brandID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]ContentDTO, len(content))
	for i := range content {
		dtos[i] = mapContentToDTO(&content[i])
	}

	response.OK(w, listContentResponse{Content: dtos})
}

// UpdateContent handles PATCH /api/v1/content/{contentID}.
func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	params := domain.UpdateContentParams{
		ContentID:   chi.URLParam(r, "contentID"),
		UpdateMask:  req.UpdateMask,
		Title:       req.Title,
		Body:        req.Body,
		AssetObject: req.AssetObject,
	}

	if req.Status != nil {
		status, err := domain.NewContentStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		params.Status = &status
	}

	content, err := s.svc.UpdateContent(r.Context(), wsID, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapContentToDTO(content))
}

// DeleteContent handles DELETE /api/v1/content/{contentID}.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteContent(r.Context(), wsID, chi.URLParam(r, "contentID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
