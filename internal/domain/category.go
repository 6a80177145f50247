package domain

// Category is a selectable interest. Categories are seeded out of band and
// read-only at runtime.
type Category struct {
	ID   string
	Name string
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page            int
	Limit           int
	Total           int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// CategoryPage is one name-ordered page of categories.
type CategoryPage struct {
	Categories []Category
	Pagination Pagination
}
