package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/filter"
	"github.com/seenlyhq/seenly/internal/http/response"
	"github.com/seenlyhq/seenly/internal/service"
)

type createTaskRequest struct {
	BrandID      string     `json:"brand_id"`
	WorkstreamID *string    `json:"workstream_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	TagID        *string    `json:"tag_id"`
	AssigneeID   *string    `json:"assignee_id"`
	StartAt      *time.Time `json:"start_at"`
	DueAt        *time.Time `json:"due_at"`
}

type updateTaskRequest struct {
	UpdateMask   []string   `json:"update_mask"`
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	TagID        *string    `json:"tag_id"`
	AssigneeID   *string    `json:"assignee_id"`
	WorkstreamID *string    `json:"workstream_id"`
	StartAt      *time.Time `json:"start_at"`
	DueAt        *time.Time `json:"due_at"`
}

type listTasksResponse struct {
	Tasks         []TaskDTO `json:"tasks"`
	TotalCount    int       `json:"total_count"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

// reservedListParams are query parameters consumed by pagination and window
// narrowing; everything else is fed to the filter codec.
var reservedListParams = []string{"page_size", "page_token", "brand_id", "workstream_id"}

// CreateTask handles POST /api/v1/tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	task, err := s.svc.CreateTask(r.Context(), wsID, service.CreateTaskParams{
		BrandID:      req.BrandID,
		WorkstreamID: req.WorkstreamID,
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		TagID:        req.TagID,
		AssigneeID:   req.AssigneeID,
		StartAt:      req.StartAt,
		DueAt:        req.DueAt,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, mapTaskToDTO(task))
}

// GetTask handles GET /api/v1/tasks/{taskID}.
func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	task, err := s.svc.GetTask(r.Context(), wsID, chi.URLParam(r, "taskID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapTaskToDTO(task))
}

// ListTasks handles GET /api/v1/tasks.
//
// Filter chips arrive as repeated query parameters (status, priority, tag,
// brand, assignee), the same encoding the filter codec produces for shareable
// URLs. A request URL pasted from the dashboard reproduces the dashboard's
// view exactly.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	offset := parsePageToken(query.Get("page_token"))

	params := domain.ListTasksParams{
		Limit:  parsePageSize(query),
		Offset: offset,
	}
	if v := query.Get("brand_id"); v != "" {
		params.BrandID = &v
	}
	if v := query.Get("workstream_id"); v != "" {
		params.WorkstreamID = &v
	}

	chipParams := cloneValues(query)
	for _, name := range reservedListParams {
		chipParams.Del(name)
	}
	chips := filter.Decode(chipParams)

	page, err := s.svc.ListTasks(r.Context(), wsID, chips, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	tasks := make([]TaskDTO, len(page.Tasks))
	for i := range page.Tasks {
		tasks[i] = mapTaskToDTO(&page.Tasks[i])
	}

	response.OK(w, listTasksResponse{
		Tasks:         tasks,
		TotalCount:    page.TotalCount,
		NextPageToken: generatePageToken(offset+len(tasks), page.HasMore),
	})
}

// UpdateTask handles PATCH /api/v1/tasks/{taskID}.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}
	if len(req.UpdateMask) == 0 {
		response.BadRequest(w, "update_mask is required")
		return
	}

	params := domain.UpdateTaskParams{
		TaskID:       chi.URLParam(r, "taskID"),
		UpdateMask:   req.UpdateMask,
		Name:         req.Name,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		WorkstreamID: req.WorkstreamID,
		StartAt:      req.StartAt,
		DueAt:        req.DueAt,
	}

	if req.Status != nil {
		status, err := domain.NewTaskStatus(*req.Status)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		params.Status = &status
	}
	if req.Priority != nil {
		priority, err := domain.NewTaskPriority(*req.Priority)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		params.Priority = &priority
	}

	task, err := s.svc.UpdateTask(r.Context(), wsID, params, req.TagID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, mapTaskToDTO(task))
}

// DeleteTask handles DELETE /api/v1/tasks/{taskID}.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	wsID, ok := workspaceID(w, r)
	if !ok {
		return
	}

	if err := s.svc.DeleteTask(r.Context(), wsID, chi.URLParam(r, "taskID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
