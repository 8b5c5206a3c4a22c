package domain

import "time"

// Workspace is the billing/organization boundary. Every API key is scoped to
// exactly one workspace, and every brand belongs to one.
type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Brand is a tenant-owned entity representing a company or product being
// tracked for AI-search visibility.
type Brand struct {
	ID          string
	WorkspaceID string
	Name        string
	Domain      string // primary web domain, e.g. "acme.com"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Workstream is a brand-scoped grouping of tasks.
type Workstream struct {
	ID        string
	BrandID   string
	Name      string
	CreatedAt time.Time
}

// Member is a workspace user sourced from the identity provider.
// Stored as a read-through cache: only the opaque id, display name, and
// avatar URL are consumed here.
type Member struct {
	ID          string
	WorkspaceID string
	Name        string
	AvatarURL   string
}

// Task is a unit of work belonging to a brand.
//
// Optional fields are pointers: absence is valid and distinct from an empty
// string. TagName holds the tag's display name as free text; deleting the tag
// leaves historical tasks untouched (matching is done by name, not by foreign
// key).
type Task struct {
	ID           string
	BrandID      string
	WorkstreamID *string

	Name        string
	Description *string

	Status   TaskStatus
	Priority TaskPriority

	TagName    *string
	AssigneeID *string

	StartAt  *time.Time
	DueAt    *time.Time
	DueLabel *string // display string derived from DueAt, e.g. "Fri, Mar 14"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag is a brand-scoped label applied to tasks.
// Name is unique within a brand, case-insensitively.
type Tag struct {
	ID        string
	BrandID   string
	Name      string
	Color     string
	CreatedAt time.Time
}

// Content is a brand-scoped content piece produced for answer-engine
// visibility. AssetObject, when set, names a blob in the content asset store.
type Content struct {
	ID          string
	BrandID     string
	Title       string
	Body        string
	Status      ContentStatus
	AssetObject *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Integration is a workspace-scoped connection to a third-party provider.
// The provider itself is an opaque collaborator; only connection metadata is
// stored here.
type Integration struct {
	ID          string
	WorkspaceID string
	Provider    string
	Status      IntegrationStatus
	Config      map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subscription is the cached view of the billing provider's state for a
// workspace. One row per workspace, read-only to dashboard calls; the billing
// webhook path upserts it.
type Subscription struct {
	WorkspaceID      string
	Plan             string
	Status           string
	CurrentPeriodEnd *time.Time
	PromptUsage      int
	PromptLimit      int
	UpdatedAt        time.Time
}

// Prompt is an admin-configured AEO query used to probe answer engines for
// brand mentions.
type Prompt struct {
	ID          string
	WorkspaceID string
	Text        string
	Engine      string // e.g. "chatgpt", "perplexity", "gemini"
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
