package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/http/response"
)

type createBrandRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

type updateBrandRequest struct {
	UpdateMask []string `json:"update_mask"`
	Name       *string  `json:"name"`
	Domain     *string  `json:"domain"`
}

type listBrandsResponse struct {
	Brands        []BrandDTO `json:"brands"`
	TotalCount    int        `json:"total_count"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

// CreateBrand handles POST /api/v1/brands.
func (s *Server) CreateBrand(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req createBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	brand, err := s.svc.CreateBrand(r.Context(), wsID, req.Name, req.Domain)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapBrandToDTO(brand))
}

// GetBrand handles GET /api/v1/brands/{brandID}.
func (s *Server) GetBrand(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	brand, err := s.svc.GetBrand(r.Context(), wsID, chi.URLParam(r, "brandID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapBrandToDTO(brand))
}

// ListBrands handles GET /api/v1/brands.
func (s *Server) ListBrands(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	offset := parsePageToken(query.Get("page_token"))

	page, err := s.svc.ListBrands(r.Context(), wsID, domain.ListBrandsParams{
		Limit:  parsePageSize(query),
		Offset: offset,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	brands := make([]BrandDTO, len(page.Brands))
	for i, b := range page.Brands {
		brands[i] = mapBrandToDTO(b)
	}

	response.OK(w, listBrandsResponse{
		Brands:        brands,
		TotalCount:    page.TotalCount,
		NextPageToken: generatePageToken(offset+len(brands), page.HasMore),
	})
}

// UpdateBrand handles PATCH /api/v1/brands/{brandID}.
func (s *Server) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	brand, err := s.svc.UpdateBrand(r.Context(), wsID, domain.UpdateBrandParams{
		BrandID:    chi.URLParam(r, "brandID"),
		UpdateMask: req.UpdateMask,
		Name:       req.Name,
		Domain:     req.Domain,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapBrandToDTO(brand))
}

// DeleteBrand handles DELETE /api/v1/brands/{brandID}.
func (s *Server) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteBrand(r.Context(), wsID, chi.URLParam(r, "brandID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
