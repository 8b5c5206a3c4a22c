package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
)

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateTagRequest struct {
	UpdateMask []string `json:"update_mask"`
	Name       *string  `json:"name"`
	Color      *string  `json:"color"`
}

type listTagsResponse struct {
	Tags []TagDTO `json:"tags"`
}

// CreateTag handles POST /api/v1/brands/{brandID}/tags.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	tag, err := s.svc.CreateTag(r.Context(), wsID, chi.URLParam(r, "brandID"), req.Name, req.Color)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapTagToDTO(tag))
}

// ListTags handles GET /api/v1/brands/{brandID}/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	tags, err := s.svc.ListTags(r.Context(), wsID, chi.URLParam(r, "brandID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]TagDTO, len(tags))
	for i := range tags {
		dtos[i] = mapTagToDTO(&tags[i])
	}

	response.OK(w, listTagsResponse{Tags: dtos})
}

// UpdateTag handles PATCH /api/v1/tags/{tagID}.
func (s *Server) UpdateTag(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	tag, err := s.svc.UpdateTag(r.Context(), wsID, domain.UpdateTagParams{
		TagID:      chi.URLParam(r, "tagID"),
		UpdateMask: req.UpdateMask,
		Name:       req.Name,
		Color:      req.Color,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapTagToDTO(tag))
}

// DeleteTag handles DELETE /api/v1/tags/{tagID}.
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteTag(r.Context(), wsID, chi.URLParam(r, "tagID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
