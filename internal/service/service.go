// Package service implements the application services behind the dashboard
// API: workspace-scoped CRUD over brands, tasks, tags, content, integrations,
// subscriptions, and prompts, plus chip-based task filtering.
package service

// Service wires the application operations to a Store.
type Service struct {
	store           Store
	defaultPageSize int
	maxPageSize     int
}

// New creates a Service. Page size bounds guard every list operation.
func New(store Store, defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = 50
	}
	if maxPageSize <= 0 {
		maxPageSize = 200
	}
	return &Service{
		store:           store,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// pageSize clamps a requested page size into the configured bounds.
// Zero or negative requests fall back to the default.
func (s *Service) pageSize(requested int) int {
	if requested <= 0 {
		return s.defaultPageSize
	}
	if requested > s.maxPageSize {
		return s.maxPageSize
	}
	return requested
}
