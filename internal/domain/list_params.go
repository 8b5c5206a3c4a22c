package domain

// ListTasksParams contains repository-level parameters for listing tasks.
//
// Chip-based visibility filtering happens in memory above the repository
// (see the filter package); these params only narrow the fetched window.
type ListTasksParams struct {
	// Optional filters (nil = no filter applied)
	BrandID      *string
	WorkstreamID *string

	// Pagination
	Limit  int
	Offset int
}

// PagedTasks contains tasks matching the query parameters.
type PagedTasks struct {
	Tasks      []Task
	TotalCount int
	HasMore    bool
}

// ListBrandsParams contains parameters for listing a workspace's brands.
type ListBrandsParams struct {
	Limit  int
	Offset int
}

// PagedBrands contains brands matching the query parameters.
type PagedBrands struct {
	Brands     []*Brand
	TotalCount int
	HasMore    bool
}
