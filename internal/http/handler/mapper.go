package handler

import (
	"time"

	"github.com/seenlyhq/seenly/internal/domain"
)

// DTOs for the JSON API. Optional domain fields stay pointers so absence
// serializes as omitted rather than zero values.

type BrandDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskDTO struct {
	ID           string     `json:"id"`
	BrandID      string     `json:"brand_id"`
	WorkstreamID *string    `json:"workstream_id,omitempty"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Tag          *string    `json:"tag,omitempty"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	StartAt      *time.Time `json:"start_at,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	DueLabel     *string    `json:"due_label,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type TagDTO struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ContentDTO struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brand_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Status      string    `json:"status"`
	AssetObject *string   `json:"asset_object,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IntegrationDTO struct {
	ID        string         `json:"id"`
	Provider  string         `json:"provider"`
	Status    string         `json:"status"`
	Config    map[string]any `json:"config,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type SubscriptionDTO struct {
	Plan             string     `json:"plan"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	PromptUsage      int        `json:"prompt_usage"`
	PromptLimit      int        `json:"prompt_limit"`
}

type PromptDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Engine    string    `json:"engine,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MemberDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Domain → DTO mappers

func mapBrandToDTO(b *domain.Brand) BrandDTO {
	return BrandDTO{
		ID:        b.ID,
		Name:      b.Name,
		Domain:    b.Domain,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func mapTaskToDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:           t.ID,
		BrandID:      t.BrandID,
		WorkstreamID: t.WorkstreamID,
		Name:         t.Name,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Tag:          t.TagName,
		AssigneeID:   t.AssigneeID,
		StartAt:      t.StartAt,
		DueAt:        t.DueAt,
		DueLabel:     t.DueLabel,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func mapTagToDTO(t *domain.Tag) TagDTO {
	return TagDTO{
		ID:        t.ID,
		BrandID:   t.BrandID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

func mapContentToDTO(c *domain.Content) ContentDTO {
	return ContentDTO{
		ID:          c.ID,
		BrandID:     c.BrandID,
		Title:       c.Title,
		Body:        c.Body,
		Status:      string(c.Status),
		AssetObject: c.AssetObject,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func mapIntegrationToDTO(i *domain.Integration) IntegrationDTO {
	return IntegrationDTO{
		ID:        i.ID,
		Provider:  i.Provider,
		Status:    string(i.Status),
		Config:    i.Config,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func mapSubscriptionToDTO(s *domain.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		Plan:             s.Plan,
		Status:           s.Status,
		CurrentPeriodEnd: s.CurrentPeriodEnd,
		PromptUsage:      s.PromptUsage,
		PromptLimit:      s.PromptLimit,
	}
}

func mapPromptToDTO(p *domain.Prompt) PromptDTO {
	return PromptDTO{
		ID:        p.ID,
		Text:      p.Text,
		Engine:    p.Engine,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func mapMemberToDTO(m *domain.Member) MemberDTO {
	return MemberDTO{
		ID:        m.ID,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
	}
}
