// Package domain holds the contracts and helpers shared by every entity façade.
package domain

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// ActiveOnly hides records with is_active=false (client listings).
	ActiveOnly bool

	// Search is a case-insensitive substring match on name.
	Search string

	// OrderBy specifies sorting (e.g., "name", "-created_at").
	OrderBy string

	// Pagination. Limit 0 means no limit.
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   100,
		OrderBy: "name",
	}
}
