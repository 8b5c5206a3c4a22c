package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by services and repository implementations.

var (
	// ErrNotFound indicates the requested resource does not exist. The
	// resource-specific variants below wrap it, so errors.Is(err, ErrNotFound)
	// matches any of them.
	ErrNotFound = errors.New("resource not found")

	// ErrBrandNotFound indicates the specified brand does not exist.
	ErrBrandNotFound = fmt.Errorf("brand: %w", ErrNotFound)

	// ErrTaskNotFound indicates the specified task does not exist.
	ErrTaskNotFound = fmt.Errorf("task: %w", ErrNotFound)

	// ErrTagNotFound indicates the specified tag does not exist.
	ErrTagNotFound = fmt.Errorf("tag: %w", ErrNotFound)

	// ErrContentNotFound indicates the specified content piece does not exist.
	ErrContentNotFound = fmt.Errorf("content: %w", ErrNotFound)

	// ErrIntegrationNotFound indicates the specified integration does not exist.
	ErrIntegrationNotFound = fmt.Errorf("integration: %w", ErrNotFound)

	// ErrPromptNotFound indicates the specified prompt does not exist.
	ErrPromptNotFound = fmt.Errorf("prompt: %w", ErrNotFound)

	// ErrSubscriptionNotFound indicates the workspace has no cached subscription row.
	ErrSubscriptionNotFound = fmt.Errorf("subscription: %w", ErrNotFound)

	// ErrInvalidID indicates the provided ID format is invalid.
	ErrInvalidID = errors.New("invalid ID format")

	// Validation errors.
	ErrNameRequired             = errors.New("name is required")
	ErrNameTooLong              = errors.New("name must be 255 characters or less")
	ErrBrandRequired            = errors.New("brand_id is required")
	ErrInvalidTaskStatus        = errors.New("invalid task status")
	ErrInvalidTaskPriority      = errors.New("invalid task priority")
	ErrInvalidContentStatus     = errors.New("invalid content status")
	ErrInvalidIntegrationStatus = errors.New("invalid integration status")
	ErrPromptTextRequired       = errors.New("prompt text is required")
	ErrProviderRequired         = errors.New("provider is required")

	// ErrDuplicateTagName indicates another tag with the same name (case-insensitive)
	// already exists in the brand.
	ErrDuplicateTagName = errors.New("tag name already exists in brand")

	// ErrUnauthorized indicates a missing, invalid, or expired API key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidAPIKeyFormat indicates the API key does not match the expected layout.
	ErrInvalidAPIKeyFormat = errors.New("invalid API key format")
)
