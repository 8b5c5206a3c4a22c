package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/http/response"
)

type syncMemberRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type listMembersResponse struct {
	Members []MemberDTO `json:"members"`
}

// SyncMember handles PUT /api/v1/members/{memberID}.
// Upserts the cached record for an identity-provider user.
func (s *Server) SyncMember(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req syncMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	member, err := s.svc.SyncMember(r.Context(), wsID, chi.URLParam(r, "memberID"), req.Name, req.AvatarURL)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapMemberToDTO(member))
}

// ListMembers handles GET /api/v1/members.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	members, err := s.svc.ListMembers(r.Context(), wsID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]MemberDTO, len(members))
	for i := range members {
		dtos[i] = mapMemberToDTO(&members[i])
	}

	response.OK(w, listMembersResponse{Members: dtos})
}
