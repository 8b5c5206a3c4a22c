package handler

import (
	"net/http"

	"github.com/seenlyhq/seenly/internal/http/middleware"
	"github.com/seenlyhq/seenly/internal/http/response"
	"github.com/seenlyhq/seenly/internal/service"
)

// Server holds the HTTP handlers for the dashboard API.
type Server struct {
	svc *service.Service
}

// NewServer creates a new HTTP handler server.
func NewServer(svc *service.Service) *Server {
	return &Server{
		svc: svc,
	}
}

// workspaceID pulls the authenticated workspace from the request, writing a
// 401 if the auth middleware did not run.
func workspaceID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.WorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "missing workspace context")
		return "", false
	}
	return id, true
}
